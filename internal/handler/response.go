package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"postboard/internal/errors"
	"postboard/internal/service"
)

const msgInvalidID = "invalid id: the id must be a number"

// Response is the body of every API response.
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
	Data    any      `json:"data,omitempty"`
	Total   *int     `json:"total,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// respond writes env as a success with the given status, or as the mapped
// failure. A non-nil total fills the total field from the data.
func respond[T any](c echo.Context, status int, message string, env service.Envelope[T], total func(T) int) error {
	if !env.Success {
		return failWith(c, env.Err, env.Errors)
	}
	resp := Response{Success: true, Message: message, Data: env.Data}
	if total != nil {
		n := total(env.Data)
		resp.Total = &n
	}
	return c.JSON(status, resp)
}

// fail writes err with the status and code of its category.
func fail(c echo.Context, err error) error {
	return failWith(c, err, errors.Messages(err))
}

// failWith writes err's category with msgs as detail. Uncategorized errors
// are logged and hidden behind a generic message.
func failWith(c echo.Context, err error, msgs []string) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		slog.ErrorContext(c.Request().Context(), "request failed",
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
		msgs = []string{httpErr.Message}
	}
	return writeError(c, httpErr, msgs...)
}

func writeError(c echo.Context, httpErr *errors.HTTPError, msgs ...string) error {
	body := httpErr.ToErrorResponse(msgs...)
	return c.JSON(httpErr.StatusCode, Response{
		Success: false,
		Message: body.Error,
		Code:    body.Code,
		Errors:  body.Errors,
	})
}

// badRequest writes a 400 validation response without reaching the services.
func badRequest(c echo.Context, messages ...string) error {
	return fail(c, errors.Validation(messages...))
}

func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil
}

func count[T any](items []T) int {
	return len(items)
}
