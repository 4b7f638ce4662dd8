package model

type CreateCommentRequest struct {
	PostID int64  `json:"post_id"`
	Text   string `json:"text"`
}

type CreateCommentResponse struct {
	Redirect
}
