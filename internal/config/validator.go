package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/InventoryRestore_Go/internal/logger"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the struct tags of cfg and the view layout.
func Validate(cfg *Config) error {
	if err := getValidator().Struct(cfg); err != nil {
		return fmt.Errorf("%s: %s", ErrMsgInvalidConfig, formatValidationError(err))
	}
	if err := cfg.View.Validate(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidConfig, err)
	}
	return nil
}

// formatValidationError lists the failing fields without leaking struct paths.
func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", field, e.Param(), e.Value()))
		case "min", "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be %s %s", field, comparison(e.Tag()), e.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, e.Param()))
		case "hostname_port":
			msgs = append(msgs, fmt.Sprintf("%s must be host:port, got %q", field, e.Value()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

func comparison(tag string) string {
	if tag == "gt" {
		return "greater than"
	}
	return "at least"
}

// Warnings returns advice for settings that load fine but are probably unintended.
func Warnings(cfg *Config) []string {
	var warnings []string
	if cfg.RetentionDays == 0 {
		warnings = append(warnings, WarnRetentionDisabled)
	}
	if cfg.Environment == logger.EnvironmentProduction && cfg.LogFormat == logger.LogFormatText {
		warnings = append(warnings, WarnTextLogsInProd)
	}
	return warnings
}
