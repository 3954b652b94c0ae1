package model

import (
	"time"
)

// Profile is the public summary of a goal owner (name + avatar), cached
// locally from verified token claims so public listings can be annotated.
type Profile struct {
	UserID    string    `db:"user_id" json:"userId"`
	Name      string    `db:"name" json:"name"`
	AvatarURL string    `db:"avatar_url" json:"avatarUrl"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}
