package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail("user@nodot"))
	assert.False(t, IsValidEmail("user.example.com"))
	assert.False(t, IsValidEmail(""))
}

func TestIsComplexPassword(t *testing.T) {
	assert.True(t, IsComplexPassword("Abcdef1!"))
	assert.False(t, IsComplexPassword("Ab1!"), "too short")
	assert.False(t, IsComplexPassword("abcdefg1!"), "no upper")
	assert.False(t, IsComplexPassword("ABCDEFG1!"), "no lower")
	assert.False(t, IsComplexPassword("Abcdefgh!"), "no digit")
	assert.False(t, IsComplexPassword("Abcdefg1"), "no special")
}

func TestGenerateSecureToken(t *testing.T) {
	first, err := GenerateSecureToken(32)
	assert.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := GenerateSecureToken(32)
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
