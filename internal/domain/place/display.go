package place

// Entry is one row of the saved-place list as shown to the user.
type Entry struct {
	Place Place
	// DisplayIndex is the 1-based rank among enabled places, 0 when disabled.
	DisplayIndex int
	// ArrayIndex is the position in the stored order, used for reorder requests.
	ArrayIndex int
}

// Entries lists enabled places first, then disabled ones, keeping stored
// order within each group.
func Entries(places []Place) []Entry {
	out := make([]Entry, 0, len(places))
	rank := 1
	for i, p := range places {
		if p.IsEnabled() {
			out = append(out, Entry{Place: p, DisplayIndex: rank, ArrayIndex: i})
			rank++
		}
	}
	for i, p := range places {
		if !p.IsEnabled() {
			out = append(out, Entry{Place: p, ArrayIndex: i})
		}
	}
	return out
}

// IndexOf returns the position of the first place with the given key, or -1.
func IndexOf(places []Place, key string) int {
	for i, p := range places {
		if p.Key() == key {
			return i
		}
	}
	return -1
}
