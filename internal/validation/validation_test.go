package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.NoError(t, ValidateEmail("first.last+tag@sub.domain.org"))

	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("user@"))
	assert.Error(t, ValidateEmail("@example.com"))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("gopher"))
	assert.NoError(t, ValidateUsername("go_pher-42"))

	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("this-username-is-way-too-long-to-accept"))
	assert.Error(t, ValidateUsername("bad name"))
	assert.Error(t, ValidateUsername("emoji🙂"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("secret123"))

	assert.Error(t, ValidatePassword("short1"))
	assert.Error(t, ValidatePassword("lettersonly"))
	assert.Error(t, ValidatePassword("12345678"))
}
