package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIDUnique(t *testing.T) {
	seen := make(map[int64]bool)
	for range 1000 {
		id := GenerateID()
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}

func TestInitRejectsOutOfRangeNode(t *testing.T) {
	assert.Error(t, Init(-1))
	assert.NoError(t, Init(3))
	assert.NotZero(t, GenerateID())
}
