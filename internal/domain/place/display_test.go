package place

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntriesOrdersEnabledFirst(t *testing.T) {
	places := []Place{
		{ID: "a"},
		Place{ID: "b"}.WithEnabled(false),
		{ID: "c"},
		Place{ID: "d"}.WithEnabled(false),
		Place{ID: "e"}.WithEnabled(true),
	}

	entries := Entries(places)

	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Place.Key()
	}
	assert.Equal(t, []string{"a", "c", "e", "b", "d"}, keys)

	assert.Equal(t, 1, entries[0].DisplayIndex)
	assert.Equal(t, 2, entries[1].DisplayIndex)
	assert.Equal(t, 3, entries[2].DisplayIndex)
	assert.Equal(t, 0, entries[3].DisplayIndex)
	assert.Equal(t, 0, entries[4].DisplayIndex)

	assert.Equal(t, 2, entries[1].ArrayIndex)
	assert.Equal(t, 1, entries[3].ArrayIndex)
}

func TestIndexOf(t *testing.T) {
	places := []Place{{ID: "a"}, {PlaceName: "Cafe"}, {Name: "n"}}
	assert.Equal(t, 0, IndexOf(places, "a"))
	assert.Equal(t, 1, IndexOf(places, "Cafe"))
	assert.Equal(t, 2, IndexOf(places, "n"))
	assert.Equal(t, -1, IndexOf(places, "missing"))
}
