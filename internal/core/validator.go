package core

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"tripcircle/internal/types"
)

// Validator wraps go-playground/validator for request payload validation.
// Validation failures are translated into AppErrors with per-field details
// so handlers can return them directly.
type Validator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewValidator creates a new Validator.
func NewValidator(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// ValidateStruct validates a struct against its `validate` tags. It returns
// nil on success, or a *types.AppError (400) whose details map field names
// to the violated rule.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Non-validation failure (e.g. passing a non-struct) is programmer
		// error; fail loudly.
		return types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"validation could not be performed",
			err,
		)
	}

	fields := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}

	return types.NewAppErrorWithDetails(
		types.ErrCodeValidationInvalidField,
		"request validation failed",
		err,
		fields,
	)
}
