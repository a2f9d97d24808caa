package models

import "time"

// Follow is a directed subscription edge: the follower receives the author's
// posts in their personalized feed. The (follower, author) pair is unique at
// the database level; self-follows are rejected in the service layer.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_author" json:"follower_id"`
	AuthorID   uint      `gorm:"not null;uniqueIndex:idx_follower_author" json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Author   User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}
