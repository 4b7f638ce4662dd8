package model

import (
	"time"

	"github.com/yatube-lab/backend/internal/entity"
)

type User struct {
	ID        string
	Username  string
	FirstName string
	LastName  string
	FullName  string
}

type Group struct {
	ID          string
	Title       string
	Slug        string
	Description string
}

type Post struct {
	ID        int64
	Text      string
	Image     string
	CreatedAt time.Time
	Author    User
	Group     *Group
}

type Comment struct {
	ID        int64
	Text      string
	CreatedAt time.Time
	Author    User
}

func ConvertUser(u *entity.User) User {
	if u == nil {
		return User{}
	}

	return User{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
	}
}

func ConvertGroup(g *entity.Group) Group {
	if g == nil {
		return Group{}
	}

	return Group{
		ID:          g.ID,
		Title:       g.Title,
		Slug:        g.Slug,
		Description: g.Description,
	}
}

func ConvertPost(p *entity.Post) Post {
	if p == nil {
		return Post{}
	}

	post := Post{
		ID:        p.ID,
		Text:      p.Text,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
		Author:    ConvertUser(&p.Author),
	}

	if p.GroupID.Valid {
		group := ConvertGroup(&p.Group)
		post.Group = &group
	}

	return post
}

func ConvertComment(c *entity.Comment) Comment {
	if c == nil {
		return Comment{}
	}

	return Comment{
		ID:        c.ID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		Author:    ConvertUser(&c.Author),
	}
}
