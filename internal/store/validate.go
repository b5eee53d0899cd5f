package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	app_errors "docuchat/client/internal/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// validateInput checks a payload against its `validate` field tags and
// wraps any failure in ErrValidation with a readable message. Runs before
// any network call, so bad input never leaves the process.
func validateInput(payload interface{}) error {
	err := getValidator().Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %s", app_errors.ErrValidation, err.Error())
	}

	var messages []string
	for _, fieldErr := range validationErrors {
		messages = append(messages, fmt.Sprintf("field '%s' failed on the '%s' rule", fieldErr.Field(), fieldErr.Tag()))
	}
	return fmt.Errorf("%w: %s", app_errors.ErrValidation, strings.Join(messages, "; "))
}
