package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"postboard/internal/model"
	"postboard/internal/service"
)

// UserHandler bundles the user HTTP handlers.
type UserHandler struct {
	svc   service.UserService
	posts service.PostService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, posts service.PostService) *UserHandler {
	return &UserHandler{svc: svc, posts: posts}
}

// VerifyRequest looks a user up by email.
type VerifyRequest struct {
	Email string `json:"email" validate:"required"`
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} Response{data=[]model.User}
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.GetAllUsers(c.Request().Context())
	return respond(c, http.StatusOK, "users retrieved", service.NewEnvelope(users, err), count[model.User])
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} Response{data=model.User}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, msgInvalidID)
	}
	user, err := h.svc.GetUserByID(c.Request().Context(), id)
	return respond(c, http.StatusOK, "user found", service.NewEnvelope(user, err), nil)
}

// GetUsersByAgeRange godoc
// @Summary Filter users by inclusive age range
// @Tags users
// @Produce json
// @Param min query int false "Minimum age"
// @Param max query int false "Maximum age"
// @Success 200 {object} Response{data=[]model.User}
// @Failure 400 {object} Response
// @Router /users/age-range [get]
func (h *UserHandler) GetUsersByAgeRange(c echo.Context) error {
	var msgs []string
	minAge, ok := ageBound(c.QueryParam("min"), math.Ceil)
	if !ok {
		msgs = append(msgs, "min must be a valid number")
	}
	maxAge, ok := ageBound(c.QueryParam("max"), math.Floor)
	if !ok {
		msgs = append(msgs, "max must be a valid number")
	}
	if len(msgs) > 0 {
		return badRequest(c, msgs...)
	}

	users, err := h.svc.GetUsersByAgeRange(c.Request().Context(), minAge, maxAge)
	return respond(c, http.StatusOK, "users filtered by age range", service.NewEnvelope(users, err), count[model.User])
}

// UpdateUser godoc
// @Summary Replace a user's profile
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body object true "name, email, age and role"
// @Success 200 {object} Response{data=model.User}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, msgInvalidID)
	}
	var fields model.Fields
	if err := (&echo.DefaultBinder{}).BindBody(c, &fields); err != nil {
		return badRequest(c, "invalid request body")
	}
	user, err := h.svc.UpdateUser(c.Request().Context(), id, fields)
	return respond(c, http.StatusOK, "user updated", service.NewEnvelope(user, err), nil)
}

// VerifyUser godoc
// @Summary Look a user up by email
// @Tags users
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Email to verify"
// @Success 200 {object} Response{data=model.User}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /users/verify [post]
func (h *UserHandler) VerifyUser(c echo.Context) error {
	var req VerifyRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "email is required")
	}
	user, err := h.svc.GetUserByEmail(c.Request().Context(), req.Email)
	return respond(c, http.StatusOK, "user verified", service.NewEnvelope(user, err), nil)
}

// CleanupInactiveUsers godoc
// @Summary Remove non-admin users without posts
// @Tags users
// @Produce json
// @Param confirm query bool true "Must be true"
// @Success 200 {object} Response{data=[]model.User}
// @Failure 400 {object} Response
// @Router /users/cleanup-inactive [delete]
func (h *UserHandler) CleanupInactiveUsers(c echo.Context) error {
	confirm := c.QueryParam("confirm") == "true"
	removed, err := h.svc.CleanupInactiveUsers(c.Request().Context(), confirm)
	return respond(c, http.StatusOK, "inactive users removed", service.NewEnvelope(removed, err), count[model.User])
}

// ListUserPosts godoc
// @Summary List the posts written by a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} Response{data=[]model.Post}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /users/{id}/posts [get]
func (h *UserHandler) ListUserPosts(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, msgInvalidID)
	}
	posts, err := h.posts.GetPostsByAuthorID(c.Request().Context(), id)
	return respond(c, http.StatusOK, "posts retrieved", service.NewEnvelope(posts, err), count[model.Post])
}

// ageBound parses an optional numeric query value; empty means absent.
// Ages are whole numbers, so a fractional bound is rounded inward with round
// (math.Ceil for a minimum, math.Floor for a maximum) without changing which
// users match.
func ageBound(raw string, round func(float64) float64) (*int, bool) {
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	v = math.Max(math.MinInt32, math.Min(math.MaxInt32, round(v)))
	n := int(v)
	return &n, true
}
