package usecase

import (
	"fmt"
	"net/mail"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors agrupa os erros de um formulário inteiro.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

func ValidateCaptureLeadInput(input CaptureLeadInput) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	} else if len(input.Name) > 100 {
		errs = append(errs, ValidationError{"name", "must not exceed 100 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if len(input.Email) > 255 {
		errs = append(errs, ValidationError{"email", "must not exceed 255 characters"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errs = append(errs, ValidationError{"phone", "is required"})
	} else if len(input.Phone) > 20 {
		errs = append(errs, ValidationError{"phone", "must not exceed 20 characters"})
	}

	return errs
}
