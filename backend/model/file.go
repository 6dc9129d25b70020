package model

import (
	"gorm.io/gorm"
)

// File maps a user's logical filename to where the uploaded bytes live.
// Filenames are not unique: re-uploading appends another row.
type File struct {
	Id        int64  `json:"id" gorm:"primaryKey"`
	UserId    int64  `json:"user_id" gorm:"index:idx_files_user_filename,priority:1;not null"`
	Filename  string `json:"filename" gorm:"index:idx_files_user_filename,priority:2;size:255;not null"`
	Path      string `json:"-" gorm:"size:1024;not null"`
	CreatedAt int64  `json:"created_at" gorm:"autoCreateTime"`
}

func InsertFile(db *gorm.DB, file *File) error {
	return db.Create(file).Error
}

// ListFilenames returns each filename of the user once, in first-upload order.
func ListFilenames(db *gorm.DB, userId int64) ([]string, error) {
	var names []string
	err := db.Model(&File{}).
		Where("user_id = ?", userId).
		Group("filename").
		Order("MIN(id)").
		Pluck("filename", &names).Error
	return names, err
}

// GetLatestFile returns the newest row for the filename.
func GetLatestFile(db *gorm.DB, userId int64, filename string) (*File, error) {
	var file File
	err := db.Where("user_id = ? AND filename = ?", userId, filename).
		Order("id DESC").
		First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func GetFiles(db *gorm.DB, userId int64, filename string) ([]*File, error) {
	var files []*File
	err := db.Where("user_id = ? AND filename = ?", userId, filename).
		Order("id").
		Find(&files).Error
	return files, err
}

func DeleteFiles(db *gorm.DB, userId int64, filename string) (int64, error) {
	result := db.Where("user_id = ? AND filename = ?", userId, filename).Delete(&File{})
	return result.RowsAffected, result.Error
}
