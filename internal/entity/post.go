package entity

import "database/sql"

type Post struct {
	SnowFlakeBase
	Text  string `gorm:"type:text;not null"`
	Image string

	AuthorID string `gorm:"not null;index"`
	Author   User   `gorm:"foreignKey:AuthorID"`

	GroupID sql.NullString `gorm:"index"`
	Group   Group          `gorm:"foreignKey:GroupID"`
}
