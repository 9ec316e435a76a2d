package domain

// Post is a blog entry. Image holds the object-storage key of its picture
// and Tags the ids of associated tags, in association order.
type Post struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Desc  string   `json:"desc"`
	Image string   `json:"image"`
	Tags  []string `json:"tags"`
}

// Normalize replaces a nil tag list with an empty one so it encodes as [].
func (p *Post) Normalize() {
	if p.Tags == nil {
		p.Tags = []string{}
	}
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
