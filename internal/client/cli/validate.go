package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type codeInput struct {
	Code string `validate:"required,numeric,len=6"`
}

type profileInput struct {
	Name  string `validate:"omitempty,min=2"`
	Email string `validate:"omitempty,email"`
}

// checkInput validates v and turns the first failure into a message for the
// user. It returns "" when v is valid.
func checkInput(v any) string {
	err := validate.Struct(v)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain digits only", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// invalid prints msg and reports whether there was anything to print.
func invalid(msg string) bool {
	if msg == "" {
		return false
	}
	printlnFn(msg)
	return true
}
