package model

type AboutRequest struct{}

type AboutResponse struct {
	Page string
}

func (r AboutResponse) TemplateName() string { return "about/" + r.Page + ".html" }
