package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const minProductionSecretLength = 32

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateConfig checks struct constraints and the rules specific to the
// configured environment. All violations are returned joined.
func ValidateConfig(cfg *Config) error {
	var errs []error

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs = append(errs, ValidationError{
				Field:   fe.Namespace(),
				Message: fmt.Sprintf("failed %q constraint (value %v)", fe.Tag(), redact(fe)),
			})
		}
	}

	if cfg.DBDriver == DriverPostgres {
		if cfg.DBHost == "" {
			errs = append(errs, ValidationError{Field: "DBHost", Message: "required for postgres"})
		}
		if cfg.DBName == "" {
			errs = append(errs, ValidationError{Field: "DBName", Message: "required for postgres"})
		}
	}
	if cfg.DBDriver == DriverSQLite && cfg.SQLitePath == "" {
		errs = append(errs, ValidationError{Field: "SQLitePath", Message: "required for sqlite"})
	}

	switch cfg.Environment {
	case Production:
		if readSecret("jwt_secret") == "" {
			errs = append(errs, ValidationError{Field: "JWTSecret", Message: "jwt_secret secret is required in production"})
		} else if len(cfg.JWTSecret) < minProductionSecretLength {
			errs = append(errs, ValidationError{Field: "JWTSecret", Message: fmt.Sprintf("must be at least %d characters in production", minProductionSecretLength)})
		}
		if cfg.DBDriver == DriverPostgres && cfg.DBPassword == "" {
			errs = append(errs, ValidationError{Field: "DBPassword", Message: "db_password secret is required in production"})
		}
		if cfg.DBDriver == DriverSQLite {
			errs = append(errs, ValidationError{Field: "DBDriver", Message: "sqlite is not supported in production"})
		}
	case CI:
		if cfg.JWTSecret == "" {
			errs = append(errs, ValidationError{Field: "JWTSecret", Message: "TEST_JWT_SECRET environment variable is required in CI environment"})
		}
	}

	return errors.Join(errs...)
}

func redact(fe validator.FieldError) interface{} {
	switch fe.StructField() {
	case "JWTSecret", "DBPassword", "RedisPassword":
		return "<redacted>"
	}
	return fe.Value()
}
