// Package pdftext extracts the plain text of PDF documents page by page.
package pdftext

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ledongthuc/pdf"
)

var ErrUnreadablePDF = errors.New("unreadable pdf")

// Extractor memoizes extracted text keyed by path, size and mtime, so a
// document converted again is not re-parsed unless it changed on disk.
type Extractor struct {
	cache *lru.Cache[string, string]
}

func NewExtractor(cacheSize int) (*Extractor, error) {
	if cacheSize <= 0 {
		cacheSize = 128
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Extractor{cache: cache}, nil
}

// ExtractText returns the concatenated plain text of every page in file
// order. The source file is only read.
func (e *Extractor) ExtractText(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}
	key := cacheKey(path, info)
	if text, ok := e.cache.Get(key); ok {
		return text, nil
	}

	pages, err := ExtractPages(path)
	if err != nil {
		return "", err
	}
	text := strings.Join(pages, "")
	e.cache.Add(key, text)
	return text, nil
}

// ExtractPages returns the plain text of each page, in order.
func ExtractPages(path string) (pages []string, err error) {
	// the parser panics on some malformed input
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: %v", ErrUnreadablePDF, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}
	defer f.Close()

	total := r.NumPage()
	pages = make([]string, 0, total)
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrUnreadablePDF, i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

func cacheKey(path string, info os.FileInfo) string {
	return path + "|" + strconv.FormatInt(info.Size(), 10) + "|" + strconv.FormatInt(info.ModTime().UnixNano(), 10)
}
