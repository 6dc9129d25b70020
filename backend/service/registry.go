package service

import (
	"context"
	"errors"
	"fmt"

	"pdf-voice/backend/library/storage"
	"pdf-voice/backend/model"

	"gorm.io/gorm"
)

// FileRegistry maps a user's logical filenames to stored paths.
type FileRegistry struct {
	db *gorm.DB
}

func NewFileRegistry(db *gorm.DB) *FileRegistry {
	return &FileRegistry{db: db}
}

// RegisterFile appends a row. Registering an existing filename again adds a
// second row; lookups use the newest one.
func (r *FileRegistry) RegisterFile(ctx context.Context, userID int64, filename, storagePath string) (int64, error) {
	file := &model.File{UserId: userID, Filename: filename, Path: storagePath}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return model.InsertFile(tx, file)
	})
	if err != nil {
		return 0, err
	}
	return file.Id, nil
}

// ListFiles returns each of the user's filenames once, oldest upload first.
func (r *FileRegistry) ListFiles(ctx context.Context, userID int64) ([]string, error) {
	names, err := model.ListFilenames(r.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (r *FileRegistry) ResolvePath(ctx context.Context, userID int64, filename string) (string, error) {
	file, err := model.GetLatestFile(r.db.WithContext(ctx), userID, filename)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, filename)
	}
	if err != nil {
		return "", err
	}
	return file.Path, nil
}

// RemoveFile deletes every row of filename and the stored bytes in one
// transaction. If the stored file cannot be removed the rows are kept.
// A stored file that is already gone does not block removal.
func (r *FileRegistry) RemoveFile(ctx context.Context, userID int64, filename string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		files, err := model.GetFiles(tx, userID, filename)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		if _, err := model.DeleteFiles(tx, userID, filename); err != nil {
			return err
		}

		seen := make(map[string]bool, len(files))
		for _, f := range files {
			if seen[f.Path] {
				continue
			}
			seen[f.Path] = true
			if err := storage.Remove(f.Path); err != nil {
				return fmt.Errorf("remove stored file: %w", err)
			}
		}
		return nil
	})
}
