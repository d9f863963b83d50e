package domain

// Decks maps a deck id to the most recently loaded Track for that deck.
// Entries are never removed; a deck appears once its first load arrives and
// keeps the latest value until overwritten.
//
// Values of this type are treated as immutable. Updates go through With,
// which derives a fresh map so rendering layers can rely on instance
// comparison for change detection.
type Decks map[int]Track

// With returns a new mapping equal to d with the track's deck overwritten.
// The receiver is left untouched.
func (d Decks) With(t Track) Decks {
	next := make(Decks, len(d)+1)
	for id, track := range d {
		next[id] = track
	}
	next[t.DeckID] = t
	return next
}

// Lookup returns the latest track for a deck, reporting whether the deck has
// seen a load yet.
func (d Decks) Lookup(deckID int) (Track, bool) {
	t, ok := d[deckID]
	return t, ok
}
