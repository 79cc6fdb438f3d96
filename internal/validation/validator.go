// =============================================================================
// Contentful CSV Importer - Option Validation
// =============================================================================
//
// This module validates option values before any row is processed. Every
// check here is performed once per run, never per row.
//
// CHECKS:
//   - Field/value lists ("mergevals", "dfltvals"):
//       title=Hello,price[en-US]=9.99
//   - Bare field lists ("skipfields", "fields"):
//       title,price[en-US],_tags
//   - Non-negative integers ("offset", "limit")
//   - Required options ("model", "space", "locale")
//
// FIELD TOKEN GRAMMAR:
//   A field token is one or more of: word characters, "-", "[" or "]".
//   A value is one or more characters other than the list delimiter.
//   The whole option value must match; trailing garbage is rejected.
//
// =============================================================================

package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// VALIDATION ERROR TYPE
// =============================================================================

// ValidationError describes one rejected option value.
type ValidationError struct {
	// Option is the name of the offending option.
	Option string

	// Value is the value that was rejected.
	Value string

	// Rule names the check that failed: "required", "int", "field-list",
	// "field-value-list".
	Rule string

	// Message is a human-readable explanation.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Option, e.Message)
}

// =============================================================================
// LIST GRAMMAR
// =============================================================================

const fieldTokenPattern = `[\w\-\[\]]+`

// fieldListPattern builds the anchored grammar for a delimited list.
//
// PARAMETERS:
//   - listDelim: The list delimiter (usually ",").
//   - withValues: Whether every item must carry "=value".
//
// EXAMPLE (listDelim ",", withValues true):
//   ^[\w\-\[\]]+=[^,]+(,[\w\-\[\]]+=[^,]+)*$
func fieldListPattern(listDelim string, withValues bool) (*regexp.Regexp, error) {
	d := regexp.QuoteMeta(listDelim)

	item := fieldTokenPattern
	if withValues {
		item += "=" + notDelim(listDelim) + "+"
	}

	return regexp.Compile("^" + item + "(?:" + d + item + ")*$")
}

// notDelim returns a pattern matching one character that does not start
// the delimiter. Single-rune delimiters get a negated class; longer ones
// fall back to any character.
func notDelim(listDelim string) string {
	if len([]rune(listDelim)) == 1 {
		return "[^" + regexp.QuoteMeta(listDelim) + "]"
	}
	return "."
}

// ValidateFieldValueList checks a "field=value<delim>field=value" option.
func ValidateFieldValueList(option, value, listDelim string) error {
	return validateList(option, value, listDelim, true)
}

// ValidateFieldList checks a "field<delim>field" option.
func ValidateFieldList(option, value, listDelim string) error {
	return validateList(option, value, listDelim, false)
}

func validateList(option, value, listDelim string, withValues bool) error {
	rule := "field-list"
	example := fmt.Sprintf("field%sfield2", listDelim)
	if withValues {
		rule = "field-value-list"
		example = fmt.Sprintf("field=val%sfield2=val2", listDelim)
	}

	re, err := fieldListPattern(listDelim, withValues)
	if err != nil {
		return &ValidationError{
			Option:  option,
			Value:   value,
			Rule:    rule,
			Message: fmt.Sprintf("list delimiter %q cannot be used: %v", listDelim, err),
		}
	}

	if !re.MatchString(value) {
		return &ValidationError{
			Option:  option,
			Value:   value,
			Rule:    rule,
			Message: fmt.Sprintf("must be in format %s etc", example),
		}
	}

	return nil
}

// =============================================================================
// SCALAR CHECKS
// =============================================================================

// ParseNonNegativeInt parses an integer option that must be 0 or greater.
func ParseNonNegativeInt(option, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0, &ValidationError{
			Option:  option,
			Value:   value,
			Rule:    "int",
			Message: "if passed, must be an integer (0+)",
		}
	}
	return n, nil
}

// ValidateRequired rejects a missing or empty required option.
func ValidateRequired(option, value string, present bool) error {
	if !present || strings.TrimSpace(value) == "" {
		return &ValidationError{
			Option:  option,
			Value:   value,
			Rule:    "required",
			Message: "must be passed",
		}
	}
	return nil
}
