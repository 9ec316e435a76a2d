package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/strogmv/postapi/internal/domain"
	"github.com/strogmv/postapi/internal/pkg/errors"
	"github.com/strogmv/postapi/internal/port"
)

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(PostsCollection)}
}

func (r *PostRepository) Create(ctx context.Context, entity *domain.Post) error {
	doc := newPostDocument(entity)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	*entity = doc.toDomain()
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NotFound("post not found")
	}

	var doc postDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.NotFound("post not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find post %s: %w", id, err)
	}
	post := doc.toDomain()
	return &post, nil
}

// ReplaceTags overwrites the tag list wholesale and returns the stored post.
func (r *PostRepository) ReplaceTags(ctx context.Context, id string, tagIDs []string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NotFound("post not found")
	}

	update := bson.M{
		"$set": bson.M{"tags": parseObjectIDs(tagIDs)},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc postDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.NotFound("post not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update post %s tags: %w", id, err)
	}
	post := doc.toDomain()
	return &post, nil
}

func (r *PostRepository) List(ctx context.Context, q port.PostQuery) ([]domain.Post, error) {
	return r.find(ctx, tagFilter(q.Tag), listOptions(q))
}

func (r *PostRepository) Search(ctx context.Context, keyword string) ([]domain.Post, error) {
	return r.find(ctx, searchFilter(keyword), options.Find().SetSort(sortSpec(port.SortByID, false)))
}

func (r *PostRepository) ListByTag(ctx context.Context, tagID string) ([]domain.Post, error) {
	if tagID == "" {
		return []domain.Post{}, nil
	}
	return r.find(ctx, tagFilter(tagID), options.Find().SetSort(sortSpec(port.SortByID, false)))
}

func (r *PostRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete posts: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *PostRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Post, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toDomain())
	}
	return posts, nil
}

var _ port.PostRepository = (*PostRepository)(nil)
