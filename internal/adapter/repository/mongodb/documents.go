package mongodb

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/strogmv/postapi/internal/domain"
)

type postDocument struct {
	ID    primitive.ObjectID   `bson:"_id,omitempty"`
	Title string               `bson:"title"`
	Desc  string               `bson:"desc"`
	Image string               `bson:"image"`
	Tags  []primitive.ObjectID `bson:"tags"`
}

type tagDocument struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func newPostDocument(p *domain.Post) postDocument {
	return postDocument{
		Title: p.Title,
		Desc:  p.Desc,
		Image: p.Image,
		Tags:  parseObjectIDs(p.Tags),
	}
}

func (d postDocument) toDomain() domain.Post {
	tags := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		tags = append(tags, t.Hex())
	}
	return domain.Post{
		ID:    d.ID.Hex(),
		Title: d.Title,
		Desc:  d.Desc,
		Image: d.Image,
		Tags:  tags,
	}
}

func (d tagDocument) toDomain() domain.Tag {
	return domain.Tag{ID: d.ID.Hex(), Name: d.Name}
}

// parseObjectIDs drops malformed ids and keeps the order of the rest.
func parseObjectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		out = append(out, oid)
	}
	return out
}
