package model

// ScopeKind selects which posts a listing contains.
type ScopeKind int

const (
	ScopeAll ScopeKind = iota
	ScopeGroup
	ScopeAuthor
	ScopeFollowed
)

type Scope struct {
	Kind ScopeKind

	// GroupSlug is used by ScopeGroup.
	GroupSlug string

	// Username is used by ScopeAuthor.
	Username string

	// ViewerID is used by ScopeFollowed.
	ViewerID string
}

type IndexRequest struct {
	Page string `json:"page"`
}

type IndexResponse struct {
	PostPage
}

func (IndexResponse) TemplateName() string { return "posts/index.html" }

type GroupListRequest struct {
	Slug string `json:"slug"`
	Page string `json:"page"`
}

type GroupListResponse struct {
	Group Group
	PostPage
}

func (GroupListResponse) TemplateName() string { return "posts/group_list.html" }

type ProfileRequest struct {
	Username string `json:"username"`
	Page     string `json:"page"`
}

type ProfileResponse struct {
	Author User
	PostPage

	Followers int64
	Following int64

	// IsFollowing is true if the viewer follows Author.
	IsFollowing bool

	// CanFollow is false for anonymous viewers and on the viewer's own profile.
	CanFollow bool
}

func (ProfileResponse) TemplateName() string { return "posts/profile.html" }

type FollowIndexRequest struct {
	Page string `json:"page"`
}

type FollowIndexResponse struct {
	PostPage
}

func (FollowIndexResponse) TemplateName() string { return "posts/follow.html" }

type PostDetailRequest struct {
	PostID int64 `json:"post_id"`
}

type PostDetailResponse struct {
	Post            Post
	Comments        []Comment
	AuthorPostCount int64

	IsAuthor   bool
	CanComment bool
}

func (PostDetailResponse) TemplateName() string { return "posts/post_detail.html" }

type CreatePostFormRequest struct{}

type CreatePostRequest struct {
	Text  string `json:"text"`
	Group string `json:"group"`
}

type EditPostFormRequest struct {
	PostID int64 `json:"post_id"`
}

type EditPostRequest struct {
	PostID int64  `json:"post_id"`
	Text   string `json:"text"`
	Group  string `json:"group"`
}

// PostFormResponse is shared by the create and edit pages.
type PostFormResponse struct {
	Redirect

	IsEdit bool
	PostID int64
	Text   string
	Group  string
	Image  string

	Groups []Group
	Errors FormErrors
}

func (PostFormResponse) TemplateName() string { return "posts/create_post.html" }
