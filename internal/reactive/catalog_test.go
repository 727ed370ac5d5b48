package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogEntriesHaveUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range Catalog {
		require.False(t, seen[def.ID], "duplicate catalog id %q", def.ID)
		seen[def.ID] = true
	}
	assert.NotEmpty(t, Catalog)
}

func TestCatalogEntriesHavePositiveBaseDuration(t *testing.T) {
	for _, def := range Catalog {
		assert.Greater(t, def.BaseDurationHours, 0.0, "state %q", def.ID)
	}
}

func TestDefByIDFindsKnownEntry(t *testing.T) {
	def, ok := defByID("famished")
	require.True(t, ok)
	assert.Equal(t, "Food", def.Trigger.Need)
}

func TestDefByIDFalseForUnknownEntry(t *testing.T) {
	_, ok := defByID("not_a_state")
	assert.False(t, ok)
}
