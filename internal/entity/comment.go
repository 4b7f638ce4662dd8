package entity

type Comment struct {
	SnowFlakeBase
	Text string `gorm:"type:text;not null"`

	PostID int64 `gorm:"not null;index"`
	Post   Post  `gorm:"foreignKey:PostID"`

	AuthorID string `gorm:"not null"`
	Author   User   `gorm:"foreignKey:AuthorID"`
}
