package validation

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TagName is the struct tag shared with gin's binding engine
const TagName = "binding"

// FiniteTag rejects NaN and ±Inf floats
const FiniteTag = "finite"

// Finite is a validator.Func for float fields. Non-float fields always pass.
func Finite(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return true
	}
}

// Register installs the custom rules on v.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(FiniteTag, Finite); err != nil {
		return fmt.Errorf("failed to register %s validation: %w", FiniteTag, err)
	}
	v.RegisterTagNameFunc(jsonFieldName)
	return nil
}

// New returns a validator that reads binding tags and knows the custom
// rules, for input that does not pass through gin.
func New() *validator.Validate {
	v := validator.New()
	v.SetTagName(TagName)
	if err := Register(v); err != nil {
		panic(err)
	}
	return v
}

// Describe flattens validation errors into "field: rule" pairs.
func Describe(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			out = append(out, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return out
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
