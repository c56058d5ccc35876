package http

import (
	"net/http"

	"social/internal/adapters/http/middleware"
	"social/internal/adapters/http/request"
	"social/internal/adapters/http/response"
	"social/internal/adapters/http/validator"
	"social/internal/domain"
	"social/internal/logger"
)

type PostHandler struct {
	svc domain.PostService
	log logger.Logger

	decoder   request.RequestDecoder
	writer    response.ResponseWriter
	validator validator.Validator
}

func NewPostHandler(
	svc domain.PostService,
	log logger.Logger,
	d request.RequestDecoder,
	w response.ResponseWriter,
	v validator.Validator,
) *PostHandler {
	return &PostHandler{
		svc:       svc,
		log:       log,
		decoder:   d,
		writer:    w,
		validator: v,
	}
}

func (h *PostHandler) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sorting, err := domain.ParsePostSorting(q.Get("sorting"))
	if err != nil {
		h.writer.Write(w, http.StatusBadRequest, &response.Response{
			Message: "sorting must be one of new, old, most_likes",
		})
		return
	}

	opts := domain.PostListOptions{
		ListOptions: domain.ListOptions{
			Page:       GetInt(q, "page", 1),
			Limit:      GetInt(q, "limit", 10),
			Search:     GetString(q, "search", ""),
			IsPaginate: GetBool(q, "paginate"),
		},
		Sorting: sorting,
	}
	if !opts.IsPaginate && !q.Has("limit") {
		opts.Limit = 0
	}

	result, err := h.svc.List(r.Context(), opts)
	if err != nil {
		writeError(w, r, h.writer, h.log, err, "failed to list posts")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Data: result.Data,
		Meta: result.Meta,
	})
}

func (h *PostHandler) Show(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r.PathValue("id"))
	if !ok {
		h.writer.Write(w, http.StatusBadRequest, &response.Response{
			Message: "invalid post id",
		})
		return
	}

	res, err := h.svc.Get(r.Context(), postID)
	if err != nil {
		writeError(w, r, h.writer, h.log, err, "failed to get post")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Data: res,
	})
}

func (h *PostHandler) Store(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.writer.Write(w, http.StatusUnauthorized, &response.Response{
			Message: "Not authenticated",
		})
		return
	}

	var req domain.PostCreateRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		h.writer.Write(w, http.StatusBadRequest, &response.Response{
			Message: err.Error(),
		})
		return
	}

	if errs := h.validator.Validate(&req); len(errs) > 0 {
		h.writer.WriteValidationError(w, errs)
		return
	}

	p, err := h.svc.Create(r.Context(), user, req)
	if err != nil {
		writeError(w, r, h.writer, h.log, err, "failed to create post")
		return
	}

	h.writer.Write(w, http.StatusCreated, &response.Response{
		Message: "post created successfully",
		Data:    p,
	})
}

func (h *PostHandler) Comments(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r.PathValue("id"))
	if !ok {
		h.writer.Write(w, http.StatusBadRequest, &response.Response{
			Message: "invalid post id",
		})
		return
	}

	comments, err := h.svc.ListComments(r.Context(), postID)
	if err != nil {
		writeError(w, r, h.writer, h.log, err, "failed to list comments")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Data: comments,
	})
}

func (h *PostHandler) StoreComment(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.writer.Write(w, http.StatusUnauthorized, &response.Response{
			Message: "Not authenticated",
		})
		return
	}

	var req domain.CommentCreateRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		h.writer.Write(w, http.StatusBadRequest, &response.Response{
			Message: err.Error(),
		})
		return
	}

	if errs := h.validator.Validate(&req); len(errs) > 0 {
		h.writer.WriteValidationError(w, errs)
		return
	}

	c, err := h.svc.CreateComment(r.Context(), user, req)
	if err != nil {
		writeError(w, r, h.writer, h.log, err, "failed to create comment")
		return
	}

	h.writer.Write(w, http.StatusCreated, &response.Response{
		Message: "comment created successfully",
		Data:    c,
	})
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.writer.Write(w, http.StatusUnauthorized, &response.Response{
			Message: "Not authenticated",
		})
		return
	}

	var req domain.LikeCreateRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		h.writer.Write(w, http.StatusBadRequest, &response.Response{
			Message: err.Error(),
		})
		return
	}

	if errs := h.validator.Validate(&req); len(errs) > 0 {
		h.writer.WriteValidationError(w, errs)
		return
	}

	l, err := h.svc.Like(r.Context(), user, req)
	if err != nil {
		writeError(w, r, h.writer, h.log, err, "failed to like post")
		return
	}

	h.writer.Write(w, http.StatusCreated, &response.Response{
		Message: "post liked",
		Data:    l,
	})
}
