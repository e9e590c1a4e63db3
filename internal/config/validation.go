package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// ValidateRequired checks if a required string field is not empty
func ValidateRequired(field, value, entityType string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("is required for %s", entityType),
		}
	}
	return nil
}

// Validate checks the instance configuration. Token values are never included
// in the returned errors.
func (ic InstanceConfig) Validate() ValidationErrors {
	var errs ValidationErrors

	if err := ValidateRequired("puppetdb_url", ic.PuppetDBURL, "instance"); err != nil {
		errs = append(errs, err.(ValidationError))
	} else if u, err := url.Parse(ic.PuppetDBURL); err != nil || u.Host == "" {
		errs.Add("puppetdb_url", "must be an absolute URL", ic.PuppetDBURL)
	} else if u.Scheme != "https" {
		errs.Add("puppetdb_url", "should use https", ic.PuppetDBURL)
	}

	if err := ValidateRequired("cacert", ic.CACert, "instance"); err != nil {
		errs = append(errs, err.(ValidationError))
	}

	if ic.ResolveAuth() == nil {
		switch {
		case strings.TrimSpace(ic.Key) != "" || strings.TrimSpace(ic.Cert) != "":
			errs.Add("key/cert", "both key and cert are required for certificate authentication")
		default:
			errs.Add("rbac_token", "either rbac_token or key and cert must be set")
		}
	}

	return errs
}
