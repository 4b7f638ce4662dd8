package entity

type Group struct {
	Base
	Title       string `gorm:"size:200;not null"`
	Slug        string `gorm:"unique;size:200;not null"`
	Description string `gorm:"type:text"`
}
