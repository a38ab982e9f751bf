package services

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taskdeck/api/internal/domain/entities"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report violations under the wire field name, not the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// validateStruct runs the declarative rules on a request struct and collects
// every violation in one pass, keyed by field name.
func validateStruct(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validation: %w", err)
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
	}

	return &entities.ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s may not be greater than %s characters.", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("The %s may not be greater than %s.", fe.Field(), fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s must be at least %s characters.", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("The %s must be at least %s.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", fe.Field())
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", fe.Field())
	default:
		return fmt.Sprintf("The %s field is invalid.", fe.Field())
	}
}

// requiredPresent flags a field that was supplied but empty; the omitempty
// tag on pointer fields skips such values, so partial updates check it here.
func requiredPresent(fields map[string][]string, name string, value *string) {
	if value != nil && *value == "" {
		fields[name] = append(fields[name], fmt.Sprintf("The %s field is required.", name))
	}
}
