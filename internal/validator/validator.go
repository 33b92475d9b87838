package validator

import (
	"strings"
	"unicode/utf8"
)

type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: map[string]string{}}
}

func (v *Validator) CheckError(ok bool, key, message string) {
	if !ok {
		v.AddFieldError(key, message)
	}
}

func (v *Validator) IsValid() bool {
	return len(v.Errors) == 0
}

// AddFieldError keeps the first message recorded for key.
func (v *Validator) AddFieldError(key, message string) {
	_, exists := v.Errors[key]
	if !exists {
		v.Errors[key] = message
	}
}

func NotBlank(val string) bool {
	return strings.TrimSpace(val) != ""
}

func LengthLessOrEqual(val string, n int) bool {
	return utf8.RuneCountInString(val) <= n
}

func PermittedValue[T comparable](val T, permittedValues ...T) bool {
	for _, permitted := range permittedValues {
		if val == permitted {
			return true
		}
	}

	return false
}
