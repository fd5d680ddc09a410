// Package validation enforces the product field rules shared by the API and
// the storage layer's collection validator.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"coldstore/internal/products"

	"github.com/go-playground/validator/v10"
)

// FieldError is one violated rule.
type FieldError struct {
	Field   string `json:"field" example:"relativeHumidity"`
	Message string `json:"message" example:"Relative humidity cannot exceed 100%."`
}

// Error carries every violation found in the input, in field order.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report violations under the wire name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// messages maps field -> rule -> user-facing message.
var messages = map[string]map[string]string{
	"productName": {
		"required": "Product name is required.",
		"min":      "Product name must be at least 3 characters long.",
		"max":      "Product name cannot exceed 100 characters.",
	},
	"storageTemperature": {
		"required": "Storage temperature is required.",
		"gte":      "Temperature cannot be below absolute zero (-273.15°C).",
		"lte":      "Temperature seems unusually high. Max 1000°C.",
	},
	"relativeHumidity": {
		"required": "Relative humidity is required.",
		"gte":      "Relative humidity cannot be negative.",
		"lte":      "Relative humidity cannot exceed 100%.",
	},
	"approximateStorageLife": {
		"required": "Approximate storage life is required.",
		"gte":      "Approximate storage life must be at least 1 day.",
		"lte":      "Storage life should not exceed 3650 days (10 years).",
	},
	"waterContentPercent": {
		"required": "Water content percentage is required.",
		"gte":      "Water content cannot be negative.",
		"lte":      "Water content cannot exceed 100%.",
	},
	"highestFreezingPointTemperature": {
		"required": "Highest freezing point temperature is required.",
		"gte":      "Temperature cannot be below absolute zero (-273.15°C).",
		"lte":      "Temperature seems unusually high for a freezing point.",
	},
	"specificHeatAboveFreezingPoint": {
		"required": "Specific heat above freezing point is required.",
		"gte":      "Specific heat above freezing point cannot be negative.",
	},
	"specificHeatBelowFreezingPoint": {
		"required": "Specific heat below freezing point is required.",
		"gte":      "Specific heat below freezing point cannot be negative.",
	},
	"latentHeat": {
		"required": "Latent heat is required.",
		"gte":      "Latent heat cannot be negative.",
	},
}

// ValidateCreate requires every field present and within range. The product
// name is trimmed in place before length checks.
func ValidateCreate(in *products.CreateProductInput) error {
	in.ProductName = strings.TrimSpace(in.ProductName)
	return check(in)
}

// ValidateUpdate accepts a possibly empty subset of fields, each checked
// against its range if present.
func ValidateUpdate(in *products.UpdateProductInput) error {
	if in.ProductName != nil {
		trimmed := strings.TrimSpace(*in.ProductName)
		in.ProductName = &trimmed
	}
	return check(in)
}

func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate input: %w", err)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe.Field(), fe.Tag()),
		})
	}
	return &Error{Fields: fields}
}

func messageFor(field, rule string) string {
	if byRule, ok := messages[field]; ok {
		if msg, ok := byRule[rule]; ok {
			return msg
		}
	}
	return fmt.Sprintf("%s failed validation rule %q.", field, rule)
}
