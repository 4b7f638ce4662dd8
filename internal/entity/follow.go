package entity

import "time"

// Follow is a directed edge from a reader to an author. The composite primary
// key keeps at most one edge per pair.
type Follow struct {
	CreatedAt time.Time

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	AuthorID string `gorm:"primaryKey;index"`
	Author   User   `gorm:"foreignKey:AuthorID"`
}
