package domain

import (
	"encoding/json"
	"fmt"
)

// Track describes one audio item loaded onto a playback deck. It is the
// message format pushed by the trackload server and consumed by overlays.
//
// Artwork is a pointer so that "no embedded artwork" travels as an explicit
// JSON null rather than an empty string.
type Track struct {
	DeckID  int     `json:"deck_id"`
	Title   string  `json:"title"`
	Artist  string  `json:"artist"`
	Album   string  `json:"album"`
	Key     string  `json:"key,omitempty"`
	Label   string  `json:"label"`
	Release string  `json:"release"`
	Year    string  `json:"year,omitempty"`
	Artwork *string `json:"artwork"`
}

// wireTrack mirrors Track but keeps deck_id as a pointer so a missing field
// can be told apart from deck 0.
type wireTrack struct {
	DeckID  *int    `json:"deck_id"`
	Title   string  `json:"title"`
	Artist  string  `json:"artist"`
	Album   string  `json:"album"`
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Release string  `json:"release"`
	Year    string  `json:"year"`
	Artwork *string `json:"artwork"`
}

// DecodeTrack decodes a single feed payload. It fails when the payload is not
// valid JSON or lacks a usable deck_id; callers are expected to discard such
// payloads and keep their previous state.
func DecodeTrack(payload []byte) (Track, error) {
	var w wireTrack
	if err := json.Unmarshal(payload, &w); err != nil {
		return Track{}, fmt.Errorf("decode track: %w", err)
	}
	if w.DeckID == nil {
		return Track{}, fmt.Errorf("decode track: missing deck_id")
	}
	if *w.DeckID <= 0 {
		return Track{}, fmt.Errorf("decode track: invalid deck_id %d", *w.DeckID)
	}

	return Track{
		DeckID:  *w.DeckID,
		Title:   w.Title,
		Artist:  w.Artist,
		Album:   w.Album,
		Key:     w.Key,
		Label:   w.Label,
		Release: w.Release,
		Year:    w.Year,
		Artwork: w.Artwork,
	}, nil
}
