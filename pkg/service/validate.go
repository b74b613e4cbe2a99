package service

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"julianmorley.ca/con-plar/storefront/pkg/models"
)

// requests carry gin's `binding` tags; services re-check them so callers
// other than the HTTP layer get the same guarantees
var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterValidations installs the storefront's custom tags and json field
// naming on v. The HTTP layer calls it on gin's validator engine.
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(JSONFieldName)
	return v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseOrderStatus(fl.Field().String())
		return ok
	})
}

// JSONFieldName reports struct fields by their json name
func JSONFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func validateRequest(req any) error {
	err := requestValidator.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validate request")
	}
	return FromValidationErrors(verrs)
}

// FromValidationErrors converts validator output into a ValidationError
func FromValidationErrors(verrs validator.ValidationErrors) *ValidationError {
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
			Code:    fe.Tag(),
		})
	}
	return &ValidationError{Message: "Invalid request data", Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "url":
		return fe.Field() + " must be a valid URL"
	case "min", "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "max", "lte":
		return fe.Field() + " must be at most " + fe.Param()
	case "orderstatus":
		return "Status must be one of pending, processing, shipped, delivered, cancelled"
	default:
		return fe.Field() + " is invalid"
	}
}
