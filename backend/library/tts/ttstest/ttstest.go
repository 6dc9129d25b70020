// Package ttstest provides a counting Synthesizer for tests.
package ttstest

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// Fake writes "AUDIO:" followed by the text. Err, when set, is returned after
// Partial bytes have been written so callers can check cleanup.
type Fake struct {
	Delay   time.Duration
	Err     error
	Partial []byte

	calls atomic.Int64
	mu    sync.Mutex
	texts []string
}

func (f *Fake) Synthesize(ctx context.Context, text string, w io.Writer) error {
	f.calls.Add(1)
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()

	if f.Delay > 0 {
		select {
		case <-time.After(f.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if f.Err != nil {
		if len(f.Partial) > 0 {
			_, _ = w.Write(f.Partial)
		}
		return f.Err
	}
	_, err := io.WriteString(w, "AUDIO:"+text)
	return err
}

// Calls is the number of Synthesize invocations so far.
func (f *Fake) Calls() int {
	return int(f.calls.Load())
}

// Texts returns the texts passed to Synthesize, in call order.
func (f *Fake) Texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}
