package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"pdf-voice/backend/common"

	"go.uber.org/zap"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// GoogleTTS talks to the Google Translate speech endpoint. Long text is sent
// in chunks and the returned MP3 frames are written in order.
type GoogleTTS struct {
	Lang     string
	Endpoint string
	Client   *http.Client
}

// NewGoogleTTS builds a client for lang spoken with the accent of tld
// ("co.uk" gives British English). endpoint overrides the derived URL.
func NewGoogleTTS(lang, tld, endpoint string, timeout time.Duration) *GoogleTTS {
	if lang == "" {
		lang = "en"
	}
	if tld == "" {
		tld = "com"
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://translate.google.%s/translate_tts", tld)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GoogleTTS{
		Lang:     lang,
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: timeout},
	}
}

func (g *GoogleTTS) Synthesize(ctx context.Context, text string, w io.Writer) error {
	chunks := Chunk(text, MaxChunkRunes)
	if len(chunks) == 0 {
		return ErrEmptyText
	}

	for idx, chunk := range chunks {
		if err := g.fetch(ctx, chunk, idx, len(chunks), w); err != nil {
			common.Logger().Warn("tts request failed",
				zap.Int("chunk", idx),
				zap.Int("chunks", len(chunks)),
				zap.Error(err))
			return err
		}
	}
	return nil
}

func (g *GoogleTTS) fetch(ctx context.Context, chunk string, idx, total int, w io.Writer) error {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("q", chunk)
	q.Set("tl", g.Lang)
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(len([]rune(chunk))))
	q.Set("client", "tw-ob")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", "http://translate.google.com/")

	resp, err := g.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: backend returned %s", ErrSynthesis, resp.Status)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("%w: read audio: %v", ErrSynthesis, err)
	}
	return nil
}
