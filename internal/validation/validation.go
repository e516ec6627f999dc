// Package validation checks external input before it reaches the services.
// Every request DTO is trimmed (see Normalizer) and then validated with
// go-playground/validator; only the first failing rule is reported.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const minPasswordLength = 8

var phonePattern = regexp.MustCompile(`^\d{10,11}$`)

// maxPrice is the first value a NUMERIC(12,2) column cannot hold
var maxPrice = decimal.New(1, 10)

// Normalizer is implemented by request types that clean up their own fields
// (whitespace trimming) before validation runs.
type Normalizer interface {
	Normalize()
}

// Error reports the first rule an input violated.
type Error struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, describe(e.Rule, e.Param))
}

// Validator is safe for concurrent use once constructed.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the marketplace rules registered.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Prices are compared as numbers so gt=0 works on decimals.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	// The custom type func above hands rules a float64, so the scale check
	// reads the decimal straight from the struct.
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		d, ok := decimalField(fl)
		return ok && IsValidPrice(d)
	})

	return &Validator{validate: v}
}

// Struct normalizes s (when it implements Normalizer) and validates it.
// s must be a pointer to a struct.
func (v *Validator) Struct(s interface{}) error {
	if n, ok := s.(Normalizer); ok {
		n.Normalize()
	}

	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &Error{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()}
	}
	return fmt.Errorf("validation failed: %w", err)
}

// ParseID validates a URL parameter that must hold a UUID.
func ParseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, &Error{Field: field, Rule: "uuid"}
	}
	return id, nil
}

// Malformed wraps a body that could not be decoded at all.
func Malformed(err error) *Error {
	return &Error{Field: "body", Rule: "malformed", Param: err.Error()}
}

// IsStrongPassword requires at least 8 characters with an upper case letter,
// a lower case letter, a digit and a symbol.
func IsStrongPassword(password string) bool {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// IsValidPrice accepts positive amounts with at most two decimal places that
// fit the products.price column.
func IsValidPrice(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Truncate(2)) && d.LessThan(maxPrice)
}

func decimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	parent := fl.Parent()
	for parent.Kind() == reflect.Ptr {
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return decimal.Decimal{}, false
	}
	f := parent.FieldByName(fl.StructFieldName())
	if f.Kind() == reflect.Ptr {
		if f.IsNil() {
			return decimal.Decimal{}, false
		}
		f = f.Elem()
	}
	d, ok := f.Interface().(decimal.Decimal)
	return d, ok
}

func describe(rule, param string) string {
	switch rule {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", param)
	case "max":
		return fmt.Sprintf("must be at most %s characters", param)
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "url":
		return "must be a valid URL"
	case "gt":
		return fmt.Sprintf("must be greater than %s", param)
	case "password":
		return "must have at least 8 characters including upper case, lower case, digit and symbol"
	case "number":
		return "must be a number"
	case "price":
		return "must have at most 2 decimal places and be below 10000000000"
	case "external":
		return "must not point into upload storage; send the file instead"
	case "phone":
		return "must contain 10 or 11 digits"
	case "malformed":
		return "request body could not be parsed"
	default:
		return fmt.Sprintf("failed %q rule", rule)
	}
}
