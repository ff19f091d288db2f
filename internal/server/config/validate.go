package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	allowedLogLevels := map[string]bool{
		"debug":   true,
		"info":    true,
		"warn":    true,
		"warning": true,
		"error":   true,
	}
	return allowedLogLevels[strings.ToLower(fieldLevel.Field().String())]
}

func validate(config *Config) error {
	v := validator.New()
	if err := v.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return err
	}
	return v.Struct(config)
}
