package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid wraps every request validation failure.
var ErrInvalid = errors.New("invalid request")

var (
	phoneRegex = regexp.MustCompile(`^\+?[0-9 ().-]{6,24}$`)
	emojiRegex = regexp.MustCompile(`^(?:[\x{1F600}-\x{1F64F}]|[\x{1F300}-\x{1F5FF}]|[\x{1F680}-\x{1F6FF}]|[\x{1F700}-\x{1F77F}]|[\x{1F780}-\x{1F7FF}]|[\x{1F800}-\x{1F8FF}]|[\x{1F900}-\x{1F9FF}]|[\x{1FA00}-\x{1FA6F}]|[\x{1FA70}-\x{1FAFF}]|[\x{2600}-\x{26FF}]|[\x{2700}-\x{27BF}]|[\x{2300}-\x{23FF}])\x{FE0F}?$`)
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterValidation("phone", validatePhone)
	v.RegisterValidation("emoji", validateEmoji)

	return &Validator{validate: v}
}

// Validate checks struct tags and returns an error wrapping ErrInvalid that
// names the failing fields.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field()+":"+fe.Tag())
		}
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateEmoji(fl validator.FieldLevel) bool {
	return emojiRegex.MatchString(fl.Field().String())
}
