package serverutils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) Response {
	return Response{Message: message, Data: data}
}

// BadRequestError marks caller mistakes so the error middleware can map
// them to 400 instead of a generic 500.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

func NewBadRequestError(format string, args ...interface{}) error {
	return &BadRequestError{Message: fmt.Sprintf(format, args...)}
}

var validate = validator.New()

// ValidateRequest runs struct-tag validation and converts failures into a
// BadRequestError with a readable field list.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return err
		}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msg := "validation failed:"
			for _, fe := range verrs {
				msg += fmt.Sprintf(" %s (%s)", fe.Field(), fe.Tag())
			}
			return &BadRequestError{Message: msg}
		}
		return err
	}
	return nil
}
