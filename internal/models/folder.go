package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Folder is a named collection of questions owned by one user. Deleting a
// folder removes its memberships in the same transaction; the questions
// themselves are untouched.
type Folder struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when none is set.
func (f *Folder) BeforeCreate(*gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

// FolderQuestion realizes the many-to-many relation between folders and
// questions. Membership changes are only valid for the folder's owner; the
// question's visibility is not re-checked at membership time.
type FolderQuestion struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FolderID   string    `gorm:"size:36;not null;uniqueIndex:idx_folder_question" json:"folder_id"`
	Folder     *Folder   `gorm:"foreignKey:FolderID" json:"-"`
	QuestionID string    `gorm:"size:36;not null;uniqueIndex:idx_folder_question" json:"question_id"`
	Question   *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (FolderQuestion) TableName() string {
	return "folder_questions"
}
