package port

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/strogmv/postapi/internal/domain"
	"github.com/strogmv/postapi/internal/pkg/errors"
)

type Blog interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (domain.Post, error)
	ListPosts(ctx context.Context, req ListPostsRequest) ([]domain.Post, error)
	SearchPosts(ctx context.Context, req SearchPostsRequest) ([]domain.Post, error)
	FilterPosts(ctx context.Context, req FilterPostsRequest) ([]domain.Post, error)
	CreateTag(ctx context.Context, req CreateTagRequest) (domain.Tag, error)
	AssignTags(ctx context.Context, req AssignTagsRequest) (domain.Post, error)
}

const (
	DefaultListLimit = 10
	DefaultListSkip  = 0
)

var validate = validator.New()

// validateStruct turns the first validation failure into an InvalidInput error.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			return errors.InvalidInput(fmt.Sprintf("%s is required", field))
		case "oneof":
			return errors.InvalidInput(fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		default:
			return errors.InvalidInput(fmt.Sprintf("%s is invalid", field))
		}
	}
	return errors.InvalidInput(err.Error())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// Request DTOs

type CreatePostRequest struct {
	Title string      `json:"title" validate:"required"`
	Desc  string      `json:"desc" validate:"required"`
	Image *StagedFile `json:"-" validate:"required"`
}

func (d *CreatePostRequest) Validate() error {
	d.Title = strings.TrimSpace(d.Title)
	d.Desc = strings.TrimSpace(d.Desc)
	return validateStruct(d)
}

type ListPostsRequest struct {
	Tag       string `json:"tag"`
	SortField string `json:"sortField" validate:"omitempty,oneof=id title desc image"`
	SortDesc  bool   `json:"sortDesc"`
	Limit     int    `json:"limit"`
	Skip      int    `json:"skip"`
}

// Validate applies the paging defaults before checking the sort field.
func (d *ListPostsRequest) Validate() error {
	if d.Limit <= 0 {
		d.Limit = DefaultListLimit
	}
	if d.Skip < 0 {
		d.Skip = DefaultListSkip
	}
	return validateStruct(d)
}

func (d ListPostsRequest) Query() PostQuery {
	return PostQuery{
		Tag:       d.Tag,
		SortField: d.SortField,
		SortDesc:  d.SortDesc,
		Skip:      d.Skip,
		Limit:     d.Limit,
	}
}

type SearchPostsRequest struct {
	Keyword string `json:"keyword"`
}

// Validate accepts anything; an empty keyword matches every post.
func (d *SearchPostsRequest) Validate() error {
	return nil
}

type FilterPostsRequest struct {
	Tag string `json:"tag" validate:"required"`
}

func (d *FilterPostsRequest) Validate() error {
	d.Tag = strings.TrimSpace(d.Tag)
	return validateStruct(d)
}

type CreateTagRequest struct {
	Name string `json:"name" validate:"required"`
}

func (d *CreateTagRequest) Validate() error {
	d.Name = strings.TrimSpace(d.Name)
	return validateStruct(d)
}

type AssignTagsRequest struct {
	PostID string   `json:"postId" validate:"required"`
	TagIDs []string `json:"tagIds"`
}

func (d *AssignTagsRequest) Validate() error {
	return validateStruct(d)
}
