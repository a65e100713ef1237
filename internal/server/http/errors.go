package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/amatveev/feedhub/internal/errs"
)

type errorBody struct {
	Message string            `json:"message"`
	Errors  []errs.FieldError `json:"errors,omitempty"`
}

// Validator adapts go-playground/validator to echo's request validation
// hook, translating tag failures into the 422 field-error envelope.
type Validator struct{ v *validator.Validate }

// NewValidator builds the request validator.
func NewValidator() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator.
func (cv *Validator) Validate(i any) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]errs.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, errs.FieldError{Message: fieldMessage(fe)})
	}
	return errs.Validation("Validation failed, entered data is incorrect", fields...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " must not be empty."
	case "email":
		return "Please enter a valid email."
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters long."
	default:
		return fe.Field() + " is invalid."
	}
}

// ErrorHandler classifies every error escaping a handler. APIErrors carry
// their own status and field list; everything else defaults to 500 with a
// generic message so internals never leak.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := errorBody{Message: "internal server error"}
		status := http.StatusInternalServerError

		var api *errs.APIError
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &api):
			status = api.Status
			body.Message = api.Message
			body.Errors = api.Fields
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				body.Message = msg
			}
		}

		if status >= http.StatusInternalServerError {
			log.Error("request failed", zap.Int("status", status), zap.Error(err))
		}
		if jsonErr := c.JSON(status, body); jsonErr != nil {
			log.Error("error response write failed", zap.Error(jsonErr))
		}
	}
}
