package http

import (
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/strogmv/postapi/internal/pkg/errors"
	"github.com/strogmv/postapi/internal/pkg/logger"
	"github.com/strogmv/postapi/internal/port"
)

// multipartMemory is how much of a multipart body ParseMultipartForm keeps
// in memory before spilling parts to temporary files.
const multipartMemory = 32 << 20

type Handler struct {
	blog    port.Blog
	uploads port.UploadStrategy
}

func NewHandler(blog port.Blog, uploads port.UploadStrategy) *Handler {
	return &Handler{blog: blog, uploads: uploads}
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	const fallback = "Failed to create post"

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		errors.WriteError(w, r, bodyError(err), fallback)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			logger.From(r.Context()).Warn("multipart cleanup failed", "error", err)
		}
	}()

	req := port.CreatePostRequest{
		Title: r.PostFormValue("title"),
		Desc:  r.PostFormValue("desc"),
	}

	file, fh, err := r.FormFile("image")
	switch {
	case stderrors.Is(err, http.ErrMissingFile):
	case err != nil:
		errors.WriteError(w, r, bodyError(err), fallback)
		return
	default:
		defer file.Close()
		staged, err := h.uploads.Stage(fh)
		if err != nil {
			errors.WriteError(w, r, errors.Upstream("stage upload", err), fallback)
			return
		}
		defer func() {
			if err := staged.Close(); err != nil {
				logger.From(r.Context()).Warn("staged upload not released", "strategy", h.uploads.Name(), "error", err)
			}
		}()
		req.Image = staged
	}

	post, err := h.blog.CreatePost(r.Context(), req)
	if err != nil {
		errors.WriteError(w, r, err, fallback)
		return
	}
	errors.WriteJSON(w, http.StatusCreated, post)
}

func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	field, desc := parseSortBy(r.URL.Query().Get("sortBy"))
	req := port.ListPostsRequest{
		Tag:       r.URL.Query().Get("tag"),
		SortField: field,
		SortDesc:  desc,
		Limit:     intParam(r, "limit", port.DefaultListLimit),
		Skip:      intParam(r, "skip", port.DefaultListSkip),
	}

	posts, err := h.blog.ListPosts(r.Context(), req)
	if err != nil {
		errors.WriteError(w, r, err, "Failed to fetch posts")
		return
	}
	errors.WriteJSON(w, http.StatusOK, posts)
}

func (h *Handler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blog.SearchPosts(r.Context(), port.SearchPostsRequest{
		Keyword: r.URL.Query().Get("keyword"),
	})
	if err != nil {
		errors.WriteError(w, r, err, "Failed to search for posts")
		return
	}
	errors.WriteJSON(w, http.StatusOK, posts)
}

func (h *Handler) FilterPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blog.FilterPosts(r.Context(), port.FilterPostsRequest{
		Tag: r.URL.Query().Get("tag"),
	})
	if err != nil {
		errors.WriteError(w, r, err, "Failed to filter posts")
		return
	}
	errors.WriteJSON(w, http.StatusOK, posts)
}

func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	const fallback = "Failed to create tag"

	var req port.CreateTagRequest
	if isJSON(r) {
		if err := decodeJSONRequest(r, &req); err != nil {
			errors.WriteError(w, r, err, fallback)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			errors.WriteError(w, r, bodyError(err), fallback)
			return
		}
		req.Name = r.PostForm.Get("name")
	}

	tag, err := h.blog.CreateTag(r.Context(), req)
	if err != nil {
		errors.WriteError(w, r, err, fallback)
		return
	}
	errors.WriteJSON(w, http.StatusCreated, tag)
}

func (h *Handler) AssignTags(w http.ResponseWriter, r *http.Request) {
	const fallback = "Failed to associate tags with post"

	req := port.AssignTagsRequest{PostID: chi.URLParam(r, "postId")}
	if isJSON(r) {
		var body struct {
			TagIDs []string `json:"tagIds"`
		}
		if err := decodeJSONRequest(r, &body); err != nil {
			errors.WriteError(w, r, err, fallback)
			return
		}
		req.TagIDs = body.TagIDs
	} else {
		if err := r.ParseForm(); err != nil {
			errors.WriteError(w, r, bodyError(err), fallback)
			return
		}
		req.TagIDs = formValues(r, "tagIds")
	}

	post, err := h.blog.AssignTags(r.Context(), req)
	if err != nil {
		errors.WriteError(w, r, err, fallback)
		return
	}
	errors.WriteJSON(w, http.StatusOK, post)
}

func Favicon(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
