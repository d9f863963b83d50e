// Package metadata turns a loaded audio file into a domain.Track by reading
// its embedded tags.
package metadata

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"

	"github.com/dhowden/tag"

	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/domain"
)

// FromFile reads the tags of the file at path and builds the Track message
// for the given deck. Missing tag frames yield blank fields; a file with no
// embedded artwork yields a nil Artwork.
func FromFile(deckID int, path string) (domain.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Track{}, fmt.Errorf("open track file: %w", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return domain.Track{}, fmt.Errorf("read tags from %s: %w", path, err)
	}

	return fromTags(deckID, m), nil
}

// fromTags maps tag frames onto the Track fields. Key and label have no
// accessor on tag.Metadata and are looked up as raw ID3 frames (TKEY, TPUB);
// the release catalog number lives in the comment frame.
func fromTags(deckID int, m tag.Metadata) domain.Track {
	t := domain.Track{
		DeckID:  deckID,
		Title:   m.Title(),
		Artist:  m.Artist(),
		Album:   m.Album(),
		Key:     rawText(m, "TKEY"),
		Label:   rawText(m, "TPUB"),
		Release: m.Comment(),
	}

	if year := m.Year(); year > 0 {
		t.Year = strconv.Itoa(year)
	}

	if pic := m.Picture(); pic != nil {
		uri := artworkDataURI(pic.MIMEType, pic.Data)
		t.Artwork = &uri
	}

	return t
}

// artworkDataURI inlines embedded artwork as a data URI so overlays need no
// access to the music files themselves.
func artworkDataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

func rawText(m tag.Metadata, frame string) string {
	if v, ok := m.Raw()[frame].(string); ok {
		return v
	}
	return ""
}
