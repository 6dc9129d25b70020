// Package tts turns plain text into spoken MP3 audio.
package tts

import (
	"context"
	"errors"
	"io"
	"strings"
	"unicode"
)

var (
	ErrEmptyText = errors.New("no text to synthesize")
	ErrSynthesis = errors.New("speech synthesis failed")
)

// MaxChunkRunes is the longest piece of text sent to the backend in one request.
const MaxChunkRunes = 100

// Synthesizer writes the audio rendition of text to w. Implementations must
// not retry; a failure is terminal for the call.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, w io.Writer) error
}

// Chunk collapses whitespace and splits text into pieces of at most max runes,
// cutting after sentence punctuation when possible, then at a space, and as a
// last resort in the middle of a word.
func Chunk(text string, max int) []string {
	if max <= 0 {
		max = MaxChunkRunes
	}
	rest := []rune(strings.Join(strings.Fields(text), " "))

	var chunks []string
	for len(rest) > 0 {
		if len(rest) <= max {
			chunks = appendChunk(chunks, string(rest))
			break
		}
		cut := splitPoint(rest[:max+1], max)
		chunks = appendChunk(chunks, string(rest[:cut]))
		rest = trimLeadingSpace(rest[cut:])
	}
	return chunks
}

// splitPoint picks where to end the next chunk. window holds max+1 runes so a
// space right after a full chunk counts as a word boundary.
func splitPoint(window []rune, max int) int {
	for i := max - 1; i > 0; i-- {
		if isSentenceEnd(window[i]) && unicode.IsSpace(window[i+1]) {
			return i + 1
		}
	}
	for i := max; i > 0; i-- {
		if unicode.IsSpace(window[i]) {
			return i
		}
	}
	return max
}

func trimLeadingSpace(r []rune) []rune {
	for len(r) > 0 && unicode.IsSpace(r[0]) {
		r = r[1:]
	}
	return r
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', ';', ':', ',':
		return true
	}
	return false
}

func appendChunk(chunks []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return chunks
	}
	return append(chunks, s)
}
