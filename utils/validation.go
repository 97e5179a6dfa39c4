package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

var (
	categoryNameRegex = regexp.MustCompile(`^[a-zA-Z0-9&' -]{2,100}$`)
	htmlTagRegex      = regexp.MustCompile(`<[^>]*>`)
)

// SanitizeString removes potentially dangerous characters and HTML tags
func SanitizeString(input string) string {
	sanitized := html.EscapeString(input)
	sanitized = htmlTagRegex.ReplaceAllString(sanitized, "")
	return strings.TrimSpace(sanitized)
}

// ValidateCategoryName checks the category display name
func ValidateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return FieldValidationErrors{{Field: "name", Message: "Name is required"}}
	}
	if !categoryNameRegex.MatchString(name) {
		return FieldValidationErrors{{Field: "name", Message: "Name must be 2-100 characters and contain only letters, numbers, spaces, &, ' or -"}}
	}
	return nil
}

// ValidateServingSizes checks a serving size list: names must be non-empty
// after trimming and unique within the category.
func ValidateServingSizes(servings []string) error {
	seen := make(map[string]bool, len(servings))
	for i, s := range servings {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return FieldValidationErrors{{
				Field:   fmt.Sprintf("servings[%d]", i),
				Message: "Serving size name cannot be empty",
			}}
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			return FieldValidationErrors{{
				Field:   fmt.Sprintf("servings[%d]", i),
				Message: fmt.Sprintf("Duplicate serving size %q", trimmed),
			}}
		}
		seen[key] = true
	}
	return nil
}

// ValidateProductFields checks the numeric constraints shared by product
// create and update requests.
func ValidateProductFields(price float64, stock int, ratings float64) error {
	var errs FieldValidationErrors
	if price <= 0 {
		errs = append(errs, FieldValidationError{Field: "price", Message: "Price must be greater than 0"})
	}
	if stock < 0 {
		errs = append(errs, FieldValidationError{Field: "stock", Message: "Stock cannot be negative"})
	}
	if ratings < 0 || ratings > 5 {
		errs = append(errs, FieldValidationError{Field: "ratings", Message: "Ratings must be between 0 and 5"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
