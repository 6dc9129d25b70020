package model

import (
	"gorm.io/gorm"
)

// User is a registered account. Only the bcrypt hash of the password is kept.
type User struct {
	Id        int64  `json:"id" gorm:"primaryKey"`
	Username  string `json:"username" gorm:"uniqueIndex;size:64;not null"`
	Hash      string `json:"-" gorm:"column:hash;size:100;not null"`
	CreatedAt int64  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt int64  `json:"updated_at" gorm:"autoUpdateTime"`
}

func CreateUser(db *gorm.DB, user *User) error {
	return db.Create(user).Error
}

func GetUserById(db *gorm.DB, id int64) (*User, error) {
	var user User
	if err := db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByUsername(db *gorm.DB, username string) (*User, error) {
	var user User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func IsUsernameAlreadyTaken(db *gorm.DB, username string) (bool, error) {
	var count int64
	err := db.Model(&User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// UpdateUserHash replaces the password hash and reports how many rows changed.
func UpdateUserHash(db *gorm.DB, id int64, hash string) (int64, error) {
	result := db.Model(&User{}).Where("id = ?", id).Update("hash", hash)
	return result.RowsAffected, result.Error
}
