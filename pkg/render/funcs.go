package render

import (
	"html/template"
	"strings"
	"time"
	"unicode/utf8"
)

var funcs = template.FuncMap{
	"linebreaksbr": linebreaksbr,
	"date":         formatDate,
	"truncate":     truncate,
	"fieldError":   fieldError,
}

// linebreaksbr escapes s and converts its newlines to <br>.
func linebreaksbr(s string) template.HTML {
	s = template.HTMLEscapeString(strings.ReplaceAll(s, "\r\n", "\n"))
	return template.HTML(strings.ReplaceAll(s, "\n", "<br>"))
}

func formatDate(t time.Time) string {
	return t.Format("2 January 2006")
}

func truncate(n int, s string) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	return string([]rune(s)[:n]) + "…"
}

func fieldError(errs map[string]string, field string) string {
	if errs == nil {
		return ""
	}

	return errs[field]
}
