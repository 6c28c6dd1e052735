package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator with the identity channel rule
// registered. Field names in messages follow the JSON tags.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(identityChannel, identityRequest{})
	return &echoValidator{v: v}
}

func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// identityChannel requires either an email or a phone with its country code.
func identityChannel(sl validator.StructLevel) {
	cur := sl.Current()
	email := cur.FieldByName("Email").String()
	phone := cur.FieldByName("Phone").String()
	code := cur.FieldByName("CountryCode").String()

	switch {
	case email != "" && (phone != "" || code != ""):
		sl.ReportError(email, "email", "Email", "exclusive", "")
	case email == "" && phone == "":
		sl.ReportError(phone, "phone", "Phone", "channel", "")
	case email == "" && code == "":
		sl.ReportError(code, "country_code", "CountryCode", "required", "")
	}
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "exclusive":
		return "use either email or phone, not both"
	case "channel":
		return "email or phone is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "startswith":
		return fmt.Sprintf("%s must start with %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
