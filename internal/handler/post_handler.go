package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"postboard/internal/errors"
	"postboard/internal/model"
	"postboard/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	svc            service.PostService
	identityHeader string
}

// NewPostHandler creates a new post handler. identityHeader names the request
// header carrying the caller's user id.
func NewPostHandler(svc service.PostService, identityHeader string) *PostHandler {
	return &PostHandler{svc: svc, identityHeader: identityHeader}
}

// CreatePostRequest represents a create post request.
type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	AuthorID int64  `json:"authorId" validate:"gte=0"`
}

type identity struct {
	UserID string `validate:"required,number"`
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post data"
// @Success 201 {object} Response{data=model.Post}
// @Failure 400 {object} Response
// @Router /posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "author id must not be negative")
	}
	post, err := h.svc.CreatePost(c.Request().Context(), req.Title, req.Content, req.AuthorID)
	return respond(c, http.StatusCreated, "post created", service.NewEnvelope(post, err), nil)
}

// ListPosts godoc
// @Summary List posts
// @Tags posts
// @Produce json
// @Success 200 {object} Response{data=[]model.Post}
// @Router /posts [get]
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.svc.GetAllPosts(c.Request().Context())
	return respond(c, http.StatusOK, "posts retrieved", service.NewEnvelope(posts, err), count[model.Post])
}

// GetPost godoc
// @Summary Get post by id
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} Response{data=model.Post}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, msgInvalidID)
	}
	post, err := h.svc.GetPostByID(c.Request().Context(), id)
	return respond(c, http.StatusOK, "post found", service.NewEnvelope(post, err), nil)
}

// UpdatePost godoc
// @Summary Partially update a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param post body object true "Any of title, content and published"
// @Success 200 {object} Response{data=model.Post}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /posts/{id} [patch]
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, msgInvalidID)
	}
	var fields model.Fields
	if err := (&echo.DefaultBinder{}).BindBody(c, &fields); err != nil {
		return badRequest(c, "invalid request body")
	}
	post, err := h.svc.UpdatePost(c.Request().Context(), id, fields)
	return respond(c, http.StatusOK, "post updated", service.NewEnvelope(post, err), nil)
}

// DeletePost godoc
// @Summary Delete a post as its author or an admin
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Param X-User-ID header int true "Caller user id"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, msgInvalidID)
	}

	userID, ok := h.callerID(c)
	if !ok {
		httpErr := errors.NewHTTPError(http.StatusUnauthorized, "caller identity required", "UNAUTHORIZED")
		return writeError(c, httpErr, "header "+h.identityHeader+" must carry a numeric user id")
	}

	deleted, err := h.svc.DeletePostWithAuth(c.Request().Context(), id, userID)
	return respond(c, http.StatusOK, "post deleted", service.NewEnvelope(deleted, err), nil)
}

// callerID reads the caller's user id from the identity header. Only plain
// decimal integers are accepted.
func (h *PostHandler) callerID(c echo.Context) (int64, bool) {
	caller := identity{UserID: c.Request().Header.Get(h.identityHeader)}
	if err := c.Validate(&caller); err != nil {
		return 0, false
	}
	userID, err := strconv.ParseInt(caller.UserID, 10, 64)
	if err != nil {
		return 0, false
	}
	return userID, true
}
