package echo

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

// errorCase maps a sentinel error to the response sent for it.
type errorCase struct {
	err     error
	status  int
	code    string
	message string
}

func respondError(c echo.Context, status int, code, message string) error {
	return c.JSON(status, apiResponse{Error: &errorBody{Code: code, Message: message}})
}

// respondUseCaseError writes the first matching case, or a 500 with fallback.
// An empty case message falls back to the error text.
func respondUseCaseError(c echo.Context, err error, fallback string, cases ...errorCase) error {
	for _, ec := range cases {
		if errors.Is(err, ec.err) {
			message := ec.message
			if message == "" {
				message = err.Error()
			}
			return respondError(c, ec.status, ec.code, message)
		}
	}

	log.Error().Err(err).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Str("path", c.Path()).
		Msg(fallback)
	return respondError(c, http.StatusInternalServerError, "internal_error", fallback)
}

func badRequest(c echo.Context, message string) error {
	return respondError(c, http.StatusBadRequest, "bad_request", message)
}

// Validator plugs go-playground/validator into echo's Context.Validate.
type Validator struct {
	validator *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validator: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// bindAndValidate decodes the request body into req and validates it,
// writing a 400 response itself on failure. ok is false when a response was written.
func bindAndValidate(c echo.Context, req any) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return false, badRequest(c, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return false, respondError(c, http.StatusBadRequest, "validation_failed",
				verrs[0].Field()+" failed on "+verrs[0].Tag())
		}
		return false, respondError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}
	return true, nil
}
