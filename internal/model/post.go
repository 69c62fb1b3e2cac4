package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is an article owned by exactly one user and filed under one category.
type Post struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title      string    `json:"title" gorm:"size:255;not null"`
	Slug       string    `json:"slug" gorm:"size:255;not null;index"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	ImageURL   string    `json:"imageUrl,omitempty" gorm:"size:1024"`
	Views      int64     `json:"views" gorm:"not null;default:0"`
	UserID     uuid.UUID `json:"userId" gorm:"type:char(36);not null;index"`
	CategoryID uuid.UUID `json:"categoryId" gorm:"type:char(36);not null;index"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Relations
	User     User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Category Category  `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Comments []Comment `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

var whitespace = regexp.MustCompile(`\s+`)

// Slugify lowercases title and joins whitespace runs with a hyphen.
func Slugify(title string) string {
	return whitespace.ReplaceAllString(strings.ToLower(title), "-")
}
