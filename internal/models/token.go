package models

import "time"

// Token is an opaque bearer credential granting time-boxed API access.
// The value carries no embedded structure; validity is decided purely by
// presence in the store and the expiry instant. Tokens reference users by
// their immutable numeric ID so a later email change cannot orphan them.
type Token struct {
	Value     string    `gorm:"primaryKey;size:64" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Token) TableName() string {
	return "tokens"
}

// ValidAt reports whether the token is live at the given instant.
// Validity is the closed-open interval [issued, expiry): a token whose
// expiry equals now is already expired. Both sides are normalized to UTC
// so instants from different zones are never compared directly.
func (t *Token) ValidAt(now time.Time) bool {
	return t.ExpiresAt.UTC().After(now.UTC())
}
