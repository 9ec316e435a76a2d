package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/strogmv/postapi/internal/domain"
	"github.com/strogmv/postapi/internal/port"
)

type TagRepository struct {
	coll *mongo.Collection
}

func NewTagRepository(db *mongo.Database) *TagRepository {
	return &TagRepository{coll: db.Collection(TagsCollection)}
}

func (r *TagRepository) Create(ctx context.Context, entity *domain.Tag) error {
	doc := tagDocument{ID: primitive.NewObjectID(), Name: entity.Name}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert tag: %w", err)
	}
	*entity = doc.toDomain()
	return nil
}

// FindByIDs returns the tags in the order their ids were requested.
func (r *TagRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Tag, error) {
	oids := parseObjectIDs(ids)
	if len(oids) == 0 {
		return []domain.Tag{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find tags: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []tagDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}

	byID := make(map[primitive.ObjectID]tagDocument, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}
	tags := make([]domain.Tag, 0, len(docs))
	for _, oid := range oids {
		if d, ok := byID[oid]; ok {
			tags = append(tags, d.toDomain())
		}
	}
	return tags, nil
}

func (r *TagRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete tags: %w", err)
	}
	return res.DeletedCount, nil
}

var _ port.TagRepository = (*TagRepository)(nil)
