package web

import (
	"embed"
	"io/fs"
)

//go:embed templates
var templates embed.FS

// Templates returns the html templates rooted at the templates directory.
func Templates() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}

	return sub
}
