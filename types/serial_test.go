package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSerial(t *testing.T) {
	assert.Equal(t, "XYZ999", NormalizeSerial(" xyz 999\t"))
	assert.Equal(t, "ABC", NormalizeSerial("a\nb c"))
	assert.Equal(t, "S12345678", StripSpaces("S1234 5678 "))
}

func TestIsPopulated(t *testing.T) {
	assert.False(t, IsPopulated(""))
	assert.False(t, IsPopulated("NA"))
	assert.True(t, IsPopulated("N/A"))
}
