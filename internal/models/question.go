package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question is a writing prompt. AuthorID is nil for seeded system content,
// which is implicitly public. User-authored questions start private and can
// be shared exactly once; there is no public-to-private transition.
type Question struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	QuestionText   string    `gorm:"type:text;not null" json:"question_text"`
	Tag            string    `gorm:"size:120" json:"tag"`
	InspiringWords string    `gorm:"type:text" json:"inspiring_words"`
	AuthorID       *uint     `gorm:"index" json:"author_id,omitempty"`
	Author         *User     `gorm:"foreignKey:AuthorID" json:"-"`
	IsPublic       bool      `gorm:"not null;default:false" json:"is_public"`
	CreatedAt      time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID primary key when none is set.
func (q *Question) BeforeCreate(*gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	return nil
}

// VisibleTo reports whether the question is readable by the given user.
// Seeded content (nil author) is globally readable; authored content is
// readable by its author always and by others only once shared.
func (q *Question) VisibleTo(userID uint) bool {
	if q.AuthorID == nil || q.IsPublic {
		return true
	}
	return *q.AuthorID == userID
}
