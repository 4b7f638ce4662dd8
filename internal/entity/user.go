package entity

type User struct {
	Base
	Username  string `gorm:"unique;size:150;not null"`
	FirstName string `gorm:"size:150"`
	LastName  string `gorm:"size:150"`
	Email     string `gorm:"size:254"`
	Password  string `gorm:"not null"`
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
