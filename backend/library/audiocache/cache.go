// Package audiocache stores synthesized audio per user, keyed by the name of
// the source document.
package audiocache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"pdf-voice/backend/common"
	"pdf-voice/backend/library/lock"
	"pdf-voice/backend/library/metrics"
	"pdf-voice/backend/library/storage"
	"pdf-voice/backend/library/tts"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Artifact is an audio file ready to be served.
type Artifact struct {
	Path   string
	Key    string
	Cached bool
}

type Cache struct {
	root    string
	synth   tts.Synthesizer
	locker  lock.Locker
	metrics *metrics.Metrics
	group   singleflight.Group
}

type Option func(*Cache)

// WithLocker serializes synthesis of one key across processes sharing root.
func WithLocker(l lock.Locker) Option {
	return func(c *Cache) {
		if l != nil {
			c.locker = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) {
		if m != nil {
			c.metrics = m
		}
	}
}

func New(root string, synth tts.Synthesizer, opts ...Option) *Cache {
	c := &Cache{
		root:    root,
		synth:   synth,
		locker:  lock.Nop{},
		metrics: metrics.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CacheKey swaps the extension of filename for the audio extension:
// notes.pdf and notes.PDF both map to notes.mp3, a name without extension
// gets one appended.
func CacheKey(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	ext := filepath.Ext(base)
	if ext == base {
		ext = ""
	}
	return strings.TrimSuffix(base, ext) + common.AudioExt
}

// Path returns where the artifact for filename lives, whether or not it exists.
func (c *Cache) Path(userID int64, filename string) (string, error) {
	return storage.UserFile(c.root, userID, CacheKey(filename))
}

// GetOrCreate returns the artifact for (userID, filename), synthesizing text
// only when no artifact exists yet. The key ignores document content, so a
// re-uploaded document with the same name reuses the old audio.
func (c *Cache) GetOrCreate(ctx context.Context, userID int64, filename string, text string) (Artifact, error) {
	key, err := storage.CleanName(CacheKey(filename))
	if err != nil {
		return Artifact{}, err
	}
	dir, err := storage.EnsureDir(c.root, userID)
	if err != nil {
		return Artifact{}, err
	}
	art := Artifact{Path: filepath.Join(dir, key), Key: key}

	if ok, err := storage.Exists(art.Path); err != nil {
		return Artifact{}, err
	} else if ok {
		c.metrics.AudioCacheHits.Inc()
		art.Cached = true
		return art, nil
	}

	flightKey := strconv.FormatInt(userID, 10) + "/" + key
	v, err, _ := c.group.Do(flightKey, func() (interface{}, error) {
		// a waiter leaving must not abort synthesis shared with others
		return c.create(context.WithoutCancel(ctx), flightKey, art, text)
	})
	if err != nil {
		return Artifact{}, err
	}
	return v.(Artifact), nil
}

func (c *Cache) create(ctx context.Context, flightKey string, art Artifact, text string) (Artifact, error) {
	unlock, err := c.locker.Lock(ctx, flightKey)
	if err != nil {
		return Artifact{}, err
	}
	defer unlock()

	// another process may have finished while we waited for the lock
	if ok, err := storage.Exists(art.Path); err != nil {
		return Artifact{}, err
	} else if ok {
		c.metrics.AudioCacheHits.Inc()
		art.Cached = true
		return art, nil
	}

	c.metrics.AudioCacheMisses.Inc()
	if strings.TrimSpace(text) == "" {
		c.metrics.SynthesisFailures.Inc()
		return Artifact{}, tts.ErrEmptyText
	}

	start := time.Now()
	_, err = storage.WriteAtomic(filepath.Dir(art.Path), art.Key, func(w io.Writer) error {
		return c.synth.Synthesize(ctx, text, w)
	})
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.SynthesisFailures.Inc()
		common.Logger().Error("synthesis failed",
			zap.String("key", flightKey),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		if errors.Is(err, tts.ErrEmptyText) || errors.Is(err, tts.ErrSynthesis) {
			return Artifact{}, err
		}
		return Artifact{}, fmt.Errorf("%w: %v", tts.ErrSynthesis, err)
	}

	c.metrics.SynthesisDuration.Observe(elapsed.Seconds())
	common.Logger().Info("audio synthesized",
		zap.String("key", flightKey),
		zap.Int("chars", len(text)),
		zap.Duration("elapsed", elapsed))
	return art, nil
}
