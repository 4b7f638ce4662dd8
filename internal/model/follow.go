package model

type FollowRequest struct {
	Username string `json:"username"`
}

type FollowResponse struct {
	Redirect
}

type UnfollowRequest struct {
	Username string `json:"username"`
}

type UnfollowResponse struct {
	Redirect
}
