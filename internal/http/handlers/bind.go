package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jasonokoro10/Gestor-de-Tasques/internal/utils"
)

// BindJSON binds the request body and, on failure, responds with a
// field-keyed validation error. Returns false when the request has
// already been answered.
func BindJSON(c *gin.Context, out interface{}) bool {
	err := c.ShouldBindJSON(out)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]map[string]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			field := jsonFieldName(out, fe.StructField())
			details = append(details, map[string]string{field: validationMessage(fe)})
		}
		utils.RespondValidationError(c, details)
		return false
	}

	// Decode errors carry Go type names and byte offsets; clients get a
	// fixed message instead.
	utils.RespondValidationError(c, "malformed request body")
	return false
}

func jsonFieldName(out interface{}, structField string) string {
	t := reflect.TypeOf(out)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return structField
	}

	sf, ok := t.FieldByName(structField)
	if !ok {
		return structField
	}

	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return structField
	}
	return name
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "cannot exceed " + fe.Param() + " characters"
	case "gte":
		return "cannot be less than " + fe.Param()
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
