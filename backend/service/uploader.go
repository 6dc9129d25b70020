package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"pdf-voice/backend/common"
	"pdf-voice/backend/library/metrics"
	"pdf-voice/backend/library/storage"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// sniffLen is how much of the upload is inspected to recognize a PDF.
const sniffLen = 3072

// Uploader stores uploaded PDFs under the user's upload directory and
// registers them.
type Uploader struct {
	root     string
	maxBytes int64
	registry *FileRegistry
	metrics  *metrics.Metrics
}

func NewUploader(root string, maxBytes int64, registry *FileRegistry, m *metrics.Metrics) *Uploader {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Uploader{root: root, maxBytes: maxBytes, registry: registry, metrics: m}
}

// SaveMultipart stores a file received from a form field.
func (u *Uploader) SaveMultipart(ctx context.Context, userID int64, header *multipart.FileHeader) (string, error) {
	if header == nil || header.Filename == "" {
		return "", ErrNoFileChosen
	}
	if u.maxBytes > 0 && header.Size > u.maxBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrFileTooLarge, header.Size)
	}
	f, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return u.Save(ctx, userID, header.Filename, f)
}

// Save validates name and content, writes the bytes to
// UPLOAD_ROOT/<user>/<name> replacing any previous upload of that name, and
// records the file. The extension is stored lower-case. It returns the stored
// filename.
func (u *Uploader) Save(ctx context.Context, userID int64, name string, r io.Reader) (string, error) {
	if name == "" {
		return "", ErrNoFileChosen
	}
	filename, err := storage.CleanName(name)
	if errors.Is(err, storage.ErrNameTooLong) {
		return "", fmt.Errorf("%w: %v", ErrInvalidFilename, err)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtensionNotAllowed, err)
	}
	ext := filepath.Ext(filename)
	if !strings.EqualFold(ext, common.AllowedUploadExt) {
		return "", ErrExtensionNotAllowed
	}
	// a.PDF and a.pdf are one file; both map to the same audio key.
	filename = strings.TrimSuffix(filename, ext) + common.AllowedUploadExt

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return "", ErrNoFileChosen
	}
	if !mimetype.Detect(head).Is("application/pdf") {
		return "", ErrNotPDF
	}

	dir, err := storage.EnsureDir(u.root, userID)
	if err != nil {
		return "", err
	}
	existed, err := storage.Exists(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}

	body := io.MultiReader(bytes.NewReader(head), r)
	path, err := storage.WriteAtomic(dir, filename, func(w io.Writer) error {
		return u.copyLimited(w, body)
	})
	if err != nil {
		return "", err
	}

	if _, err := u.registry.RegisterFile(ctx, userID, filename, path); err != nil {
		if !existed {
			_ = storage.Remove(path)
		}
		return "", fmt.Errorf("register file: %w", err)
	}

	u.metrics.Uploads.Inc()
	common.Logger().Info("file uploaded",
		zap.Int64("user_id", userID),
		zap.String("filename", filename))
	return filename, nil
}

func (u *Uploader) copyLimited(w io.Writer, r io.Reader) error {
	if u.maxBytes <= 0 {
		_, err := io.Copy(w, r)
		return err
	}
	written, err := io.Copy(w, io.LimitReader(r, u.maxBytes+1))
	if err != nil {
		return err
	}
	if written > u.maxBytes {
		return fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, u.maxBytes)
	}
	return nil
}
