package audiocache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"pdf-voice/backend/library/lock"
	"pdf-voice/backend/library/metrics"
	"pdf-voice/backend/library/tts"
	"pdf-voice/backend/library/tts/ttstest"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"notes.pdf", "notes.mp3"},
		{"report.PDF", "report.mp3"},
		{"my.notes.pdf", "my.notes.mp3"},
		{"README", "README.mp3"},
		{"dir/sub/notes.pdf", "notes.mp3"},
		{`C:\docs\notes.pdf`, "notes.mp3"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CacheKey(tt.in))
		})
	}
}

func TestGetOrCreate_SecondCallIsCached(t *testing.T) {
	root := t.TempDir()
	synth := &ttstest.Fake{}
	m := metrics.NewNop()
	c := New(root, synth, WithMetrics(m))

	first, err := c.GetOrCreate(context.Background(), 1, "doc.pdf", "hello there")
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, filepath.Join(root, "1", "doc.mp3"), first.Path)
	assert.Equal(t, "doc.mp3", first.Key)

	second, err := c.GetOrCreate(context.Background(), 1, "doc.pdf", "hello there")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Path, second.Path)

	assert.Equal(t, 1, synth.Calls())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AudioCacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AudioCacheMisses))

	data, err := os.ReadFile(first.Path)
	require.NoError(t, err)
	assert.Equal(t, "AUDIO:hello there", string(data))
}

func TestGetOrCreate_UsersAreIsolated(t *testing.T) {
	root := t.TempDir()
	synth := &ttstest.Fake{}
	c := New(root, synth)

	a, err := c.GetOrCreate(context.Background(), 1, "report.pdf", "text of A")
	require.NoError(t, err)
	b, err := c.GetOrCreate(context.Background(), 2, "report.pdf", "text of B")
	require.NoError(t, err)

	assert.NotEqual(t, a.Path, b.Path)
	assert.Equal(t, 2, synth.Calls())

	dataA, err := os.ReadFile(a.Path)
	require.NoError(t, err)
	dataB, err := os.ReadFile(b.Path)
	require.NoError(t, err)
	assert.Equal(t, "AUDIO:text of A", string(dataA))
	assert.Equal(t, "AUDIO:text of B", string(dataB))
}

func TestGetOrCreate_SameNameReusesStaleAudio(t *testing.T) {
	synth := &ttstest.Fake{}
	c := New(t.TempDir(), synth)

	first, err := c.GetOrCreate(context.Background(), 1, "doc.pdf", "old content")
	require.NoError(t, err)
	second, err := c.GetOrCreate(context.Background(), 1, "doc.pdf", "new content")
	require.NoError(t, err)

	assert.True(t, second.Cached)
	data, err := os.ReadFile(second.Path)
	require.NoError(t, err)
	assert.Equal(t, "AUDIO:old content", string(data))
	assert.Equal(t, first.Path, second.Path)
}

func TestGetOrCreate_FailureLeavesNoArtifact(t *testing.T) {
	root := t.TempDir()
	synth := &ttstest.Fake{Err: errors.New("backend down"), Partial: []byte("ID3 truncated")}
	m := metrics.NewNop()
	c := New(root, synth, WithMetrics(m))

	_, err := c.GetOrCreate(context.Background(), 7, "doc.pdf", "some text")
	require.Error(t, err)
	assert.ErrorIs(t, err, tts.ErrSynthesis)

	entries, err := os.ReadDir(filepath.Join(root, "7"))
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SynthesisFailures))

	// next attempt synthesizes again instead of hitting a broken file
	synth.Err = nil
	art, err := c.GetOrCreate(context.Background(), 7, "doc.pdf", "some text")
	require.NoError(t, err)
	assert.False(t, art.Cached)
	assert.Equal(t, 2, synth.Calls())
}

func TestGetOrCreate_EmptyText(t *testing.T) {
	synth := &ttstest.Fake{}
	c := New(t.TempDir(), synth)

	_, err := c.GetOrCreate(context.Background(), 1, "blank.pdf", "  \n ")
	assert.ErrorIs(t, err, tts.ErrEmptyText)
	assert.Equal(t, 0, synth.Calls())
}

func TestGetOrCreate_InvalidName(t *testing.T) {
	c := New(t.TempDir(), &ttstest.Fake{})
	_, err := c.GetOrCreate(context.Background(), 1, ".pdf", "text")
	assert.Error(t, err)
}

func TestGetOrCreate_ConcurrentCallsSynthesizeOnce(t *testing.T) {
	synth := &ttstest.Fake{Delay: 50 * time.Millisecond}
	c := New(t.TempDir(), synth)

	const n = 8
	paths := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			art, err := c.GetOrCreate(context.Background(), 3, "same.pdf", "shared text")
			assert.NoError(t, err)
			paths[i] = art.Path
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, synth.Calls())
	for _, p := range paths {
		assert.Equal(t, paths[0], p)
	}
}

func TestGetOrCreate_WithRedisLocker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	root := t.TempDir()
	synth := &ttstest.Fake{}
	locker := lock.NewRedisLocker(client, "pv:audio:", time.Minute)

	// two caches over one root behave like two processes
	a := New(root, synth, WithLocker(locker))
	b := New(root, synth, WithLocker(locker))

	_, err := a.GetOrCreate(context.Background(), 1, "doc.pdf", "text")
	require.NoError(t, err)
	art, err := b.GetOrCreate(context.Background(), 1, "doc.pdf", "text")
	require.NoError(t, err)

	assert.True(t, art.Cached)
	assert.Equal(t, 1, synth.Calls())
	assert.False(t, mr.Exists("pv:audio:1/doc.mp3"))
}

func TestPath(t *testing.T) {
	root := t.TempDir()
	c := New(root, &ttstest.Fake{})
	p, err := c.Path(4, "book.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "4", "book.mp3"), p)
}
