package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.AudioCacheHits.Inc()
	m.AudioCacheMisses.Add(2)
	m.HTTPRequests.WithLabelValues("GET", "/", "200").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AudioCacheHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AudioCacheMisses))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "pdf_voice_audio_cache_hits_total")
	assert.Contains(t, names, "pdf_voice_http_requests_total")
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

func TestNewNop_Independent(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop()
		NewNop()
	})
}
