package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerGroupCaseInsensitive(t *testing.T) {
	lower, ok := FingerGroup('q')
	assert.True(t, ok)
	upper, ok2 := FingerGroup('Q')
	assert.True(t, ok2)
	assert.Equal(t, lower, upper)
	assert.Equal(t, LeftPinky, lower)
}

func TestFingerGroupUnknownCharacter(t *testing.T) {
	_, ok := FingerGroup('#')
	assert.False(t, ok)
}

func TestSpaceIsThumb(t *testing.T) {
	group, ok := FingerGroup(' ')
	assert.True(t, ok)
	assert.Equal(t, RightThumb, group)
}
