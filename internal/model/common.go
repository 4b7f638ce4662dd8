package model

import (
	"net/http"

	"github.com/yatube-lab/backend/pkg/paginator"
)

// Redirect is embedded by responses which may finish the request with a
// redirect instead of a rendered page.
type Redirect struct {
	RedirectURL string `json:"-"`
}

func RedirectTo(url string) Redirect {
	return Redirect{RedirectURL: url}
}

// RedirectInfo returns an empty uri when no redirect is requested.
func (r Redirect) RedirectInfo() (int, string) {
	if r.RedirectURL == "" {
		return 0, ""
	}

	return http.StatusFound, r.RedirectURL
}

// FormErrors maps a form field to its validation message. The key "__all__"
// holds errors which do not belong to a single field.
type FormErrors map[string]string

const NonFieldErrors = "__all__"

func (e FormErrors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

func (e FormErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

type PostPage struct {
	Posts []Post
	Page  paginator.Page
}

// PageNumber is the number of the page actually served, after clamping.
func (p PostPage) PageNumber() int {
	return p.Page.Number
}
