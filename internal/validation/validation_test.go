package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestField_AllRulesEvaluated(t *testing.T) {
	verrs := &Errors{}
	// An empty value fails both the length and format rules; neither
	// short-circuits the other.
	verrs.Field("email", "",
		MinLength(3, "Email is required."),
		Email("Please enter a valid email."))

	assert.True(t, verrs.HasErrors())
	assert.Len(t, verrs.Fields, 2)
	assert.Equal(t, "email", verrs.Fields[0].Param)
	assert.Equal(t, "Email is required.", verrs.Fields[0].Message)
	assert.Equal(t, "Please enter a valid email.", verrs.Fields[1].Message)
}

func TestField_PassingValue(t *testing.T) {
	verrs := &Errors{}
	verrs.Field("email", "ana@example.com",
		MinLength(3, "Email is required."),
		Email("Please enter a valid email."))

	assert.False(t, verrs.HasErrors())
}

func TestMinLength(t *testing.T) {
	rule := MinLength(3, "too short")

	assert.True(t, rule.Check("abc"))
	assert.True(t, rule.Check("  abc  ")) // trimmed before measuring
	assert.False(t, rule.Check("ab"))
	assert.False(t, rule.Check("   "))
}

func TestEmail(t *testing.T) {
	rule := Email("invalid")

	assert.True(t, rule.Check("ana@example.com"))
	assert.True(t, rule.Check(" ana@example.com "))
	assert.False(t, rule.Check("not-an-email"))
	assert.False(t, rule.Check("a@b"))
	assert.False(t, rule.Check(""))
}

func TestNumeric(t *testing.T) {
	rule := Numeric("invalid")

	assert.True(t, rule.Check("11999999999"))
	assert.False(t, rule.Check("11-99999999"))
	assert.False(t, rule.Check("abc"))
	assert.False(t, rule.Check(""))
}

func TestErrors_Error(t *testing.T) {
	verrs := &Errors{}
	verrs.Add("phone", "Please enter a valid phone.")

	assert.Contains(t, verrs.Error(), "phone")
	assert.Contains(t, verrs.Error(), "Please enter a valid phone.")
}
