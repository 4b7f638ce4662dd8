// Package render turns responses into html pages.
//
// Every page template defines a "title" and a "content" template and is
// parsed together with the shared layout, which defines "base". Rendering is
// split in two steps: the fragment (title and content) depends only on the
// response, the page wraps a fragment into the layout for a given viewer.
// Fragments are therefore safe to share between viewers.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"
)

const (
	layoutFile    = "base.html"
	includesGlob  = "includes/*.html"
	includesDir   = "includes/"
	baseTemplate  = "base"
	titleTemplate = "title"
	bodyTemplate  = "content"
)

type Viewer struct {
	ID       string
	Username string
}

func (v Viewer) IsAuthenticated() bool {
	return v.ID != ""
}

type Fragment struct {
	Template string        `json:"template"`
	Title    string        `json:"title"`
	Content  template.HTML `json:"content"`
}

type layoutData struct {
	Title   string
	Content template.HTML
	Viewer  Viewer
	Year    int
}

type Renderer struct {
	pages map[string]*template.Template
}

func New(fsys fs.FS) (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}

	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || path.Ext(name) != ".html" || name == layoutFile ||
			strings.HasPrefix(name, includesDir) {
			return nil
		}

		t, err := template.New(path.Base(name)).
			Funcs(funcs).
			ParseFS(fsys, layoutFile, includesGlob, name)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}

		r.pages[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Renderer) lookup(name string) (*template.Template, error) {
	t, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("template %s not found", name)
	}

	return t, nil
}

// Fragment renders the title and content of the page name with data.
func (r *Renderer) Fragment(name string, data any) (*Fragment, error) {
	t, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	title := new(bytes.Buffer)
	if err := t.ExecuteTemplate(title, titleTemplate, data); err != nil {
		return nil, err
	}

	content := new(bytes.Buffer)
	if err := t.ExecuteTemplate(content, bodyTemplate, data); err != nil {
		return nil, err
	}

	return &Fragment{
		Template: name,
		Title:    strings.TrimSpace(title.String()),
		Content:  template.HTML(content.String()),
	}, nil
}

// Page writes the complete html document of fragment for viewer.
func (r *Renderer) Page(w io.Writer, fragment *Fragment, viewer Viewer) error {
	t, err := r.lookup(fragment.Template)
	if err != nil {
		return err
	}

	return t.ExecuteTemplate(w, baseTemplate, layoutData{
		Title:   fragment.Title,
		Content: fragment.Content,
		Viewer:  viewer,
		Year:    time.Now().Year(),
	})
}
