package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Sup3rSecret"))
	assert.Error(t, ValidatePassword("Sh0rt"))
	assert.Error(t, ValidatePassword("alllowercase1"))
	assert.Error(t, ValidatePassword("ALLUPPERCASE1"))
	assert.Error(t, ValidatePassword("NoNumbersHere"))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("tapiofan"))
	assert.NoError(t, ValidateUsername("tapio_fan_99"))
	assert.Error(t, ValidateUsername("short"))
	assert.Error(t, ValidateUsername("has spaces"))
	assert.Error(t, ValidateUsername("bad-chars!"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("tapiofan@example.com"))
	assert.NoError(t, ValidateEmail("first.last@sub.example.co"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld@example.com"))
	assert.Error(t, ValidateEmail("@example.com"))
}
