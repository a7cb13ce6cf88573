package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRe   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	numericRe = regexp.MustCompile(`^[0-9]+$`)
)

// Rule is a single predicate with the message reported when it fails.
type Rule struct {
	Check   func(value string) bool
	Message string
}

// FieldError is one failed rule for one field.
type FieldError struct {
	Param   string `json:"param"`
	Message string `json:"msg"`
}

// Errors aggregates field errors across all evaluated rules. It implements
// error so services can return it through the usual error path.
type Errors struct {
	Fields []FieldError
}

func (e *Errors) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Param, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add appends a field error.
func (e *Errors) Add(param, message string) {
	e.Fields = append(e.Fields, FieldError{Param: param, Message: message})
}

// HasErrors reports whether any rule failed.
func (e *Errors) HasErrors() bool {
	return len(e.Fields) > 0
}

// Field evaluates every rule in order against the value, recording each
// failure. Rules do not short-circuit: a field can fail several rules at once.
func (e *Errors) Field(param, value string, rules ...Rule) {
	for _, r := range rules {
		if !r.Check(value) {
			e.Add(param, r.Message)
		}
	}
}

// MinLength requires the trimmed value to be at least n characters.
func MinLength(n int, message string) Rule {
	return Rule{
		Check:   func(v string) bool { return len(strings.TrimSpace(v)) >= n },
		Message: message,
	}
}

// Email requires a well-formed email address.
func Email(message string) Rule {
	return Rule{
		Check:   func(v string) bool { return emailRe.MatchString(strings.TrimSpace(v)) },
		Message: message,
	}
}

// Numeric requires the value to consist only of digits.
func Numeric(message string) Rule {
	return Rule{
		Check:   func(v string) bool { return numericRe.MatchString(strings.TrimSpace(v)) },
		Message: message,
	}
}
