package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered author.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	Firstname    string    `json:"firstname" gorm:"size:100;not null"`
	Lastname     string    `json:"lastname" gorm:"size:100;not null"`
	Bio          string    `json:"bio,omitempty" gorm:"type:text"`
	ImageURL     string    `json:"imageUrl,omitempty" gorm:"size:1024"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Author is the public projection of a User embedded in posts and comments.
type Author struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username,omitempty"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	ImageURL  string    `json:"imageUrl,omitempty"`
}

// AuthorOf projects u for embedding. A zero User yields nil.
func AuthorOf(u User) *Author {
	if u.ID == uuid.Nil {
		return nil
	}
	return &Author{
		ID:        u.ID,
		Username:  u.Username,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		ImageURL:  u.ImageURL,
	}
}
