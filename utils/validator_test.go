package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("applicant@example.com"))
	assert.True(t, ValidateEmail("first.last+tag@sub.domain.co"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("missing@tld"))
	assert.False(t, ValidateEmail("@example.com"))
	assert.False(t, ValidateEmail(""))
}

func TestValidatePassword(t *testing.T) {
	ok, msg := ValidatePassword("longenough")
	assert.True(t, ok)
	assert.Equal(t, "", msg)

	ok, msg = ValidatePassword("short")
	assert.False(t, ok)
	assert.Equal(t, "Password must be at least 8 characters long", msg)
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "hello", SanitizeInput("  hello  "))
	assert.Equal(t, "ab", SanitizeInput("a\x00b"))
	assert.Equal(t, "", SanitizeInput("   "))
}
