package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Response is the JSON envelope every endpoint uses.
// Success: {"status":"success","message":...,"data":...}
// Failure: {"status":"Failed","message":...}
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, Response{Status: "success", Message: message, Data: data})
}

func Failed(c echo.Context, code int, message string) error {
	return c.JSON(code, Response{Status: "Failed", Message: message})
}

// NotFoundHandler answers any unmatched (method, path) pair.
func NotFoundHandler(c echo.Context) error {
	return Failed(c, http.StatusNotFound, "Route Not Found")
}

// ErrorHandler maps every error escaping a handler onto the failure envelope.
// Routing misses keep the exact "Route Not Found" message; record misses
// become 404s; anything else is a 500 with the error logged server-side only.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal Server Error"

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		code = he.Code
		if code == http.StatusNotFound {
			message = "Route Not Found"
		} else if s, ok := he.Message.(string); ok {
			message = s
		} else {
			message = http.StatusText(code)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		code = http.StatusNotFound
		message = "Record Not Found"
	default:
		log.Printf("handler error: %v", err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = Failed(c, code, message)
}
