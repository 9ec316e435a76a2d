package domain

type PostCreated struct {
	PostID string `json:"postId"`
	Title  string `json:"title"`
	Image  string `json:"image"`
}

type TagCreated struct {
	TagID string `json:"tagId"`
	Name  string `json:"name"`
}

type PostTagsAssigned struct {
	PostID string   `json:"postId"`
	TagIDs []string `json:"tagIds"`
}
