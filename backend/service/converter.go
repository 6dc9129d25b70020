package service

import (
	"context"

	"pdf-voice/backend/common"
	"pdf-voice/backend/library/audiocache"
	"pdf-voice/backend/library/metrics"
	"pdf-voice/backend/library/pdftext"

	"go.uber.org/zap"
)

// Conversion is the result of turning one registered PDF into text and audio.
type Conversion struct {
	Filename  string `json:"filename"`
	Text      string `json:"text"`
	AudioFile string `json:"audio_file"`
	AudioPath string `json:"-"`
	Cached    bool   `json:"cached"`
}

type Converter struct {
	registry  *FileRegistry
	extractor *pdftext.Extractor
	cache     *audiocache.Cache
	metrics   *metrics.Metrics
}

func NewConverter(registry *FileRegistry, extractor *pdftext.Extractor, cache *audiocache.Cache, m *metrics.Metrics) *Converter {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Converter{registry: registry, extractor: extractor, cache: cache, metrics: m}
}

// Convert resolves filename for the user, extracts its text and returns the
// cached or freshly synthesized audio for it.
func (c *Converter) Convert(ctx context.Context, userID int64, filename string) (*Conversion, error) {
	path, err := c.registry.ResolvePath(ctx, userID, filename)
	if err != nil {
		return nil, err
	}

	text, err := c.extractor.ExtractText(path)
	if err != nil {
		c.metrics.ExtractionFailures.Inc()
		common.Logger().Warn("text extraction failed",
			zap.Int64("user_id", userID),
			zap.String("filename", filename),
			zap.Error(err))
		return nil, err
	}

	art, err := c.cache.GetOrCreate(ctx, userID, filename, text)
	if err != nil {
		return nil, err
	}

	return &Conversion{
		Filename:  filename,
		Text:      text,
		AudioFile: art.Key,
		AudioPath: art.Path,
		Cached:    art.Cached,
	}, nil
}
