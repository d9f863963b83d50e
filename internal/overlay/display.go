package overlay

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"sync"

	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/domain"
	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/metrics"
)

// slotDecks fixes which decks the overlay shows and in which order. This is
// a business rule, not derived from the feed: the booth runs decks 3 and 2.
var slotDecks = [2]int{3, 2}

//go:embed templates/overlay.html
var templateFS embed.FS

// slotView is the per-slot template input. Track is nil until the slot's
// deck has reported a load.
type slotView struct {
	Deck  int
	Track *cardView
}

// cardView is a Track prepared for rendering. Artwork data URIs would be
// stripped by the template URL filter, so the source is pre-approved here
// after the nil check has already happened in Go code.
type cardView struct {
	HasArtwork bool
	Artwork    template.URL
	Title      string
	Artist     string
	Album      string
	Label      string
	Release    string
}

func newCardView(t domain.Track) *cardView {
	v := &cardView{
		Title:   t.Title,
		Artist:  t.Artist,
		Album:   t.Album,
		Label:   t.Label,
		Release: t.Release,
	}
	if t.Artwork != nil {
		v.HasArtwork = true
		v.Artwork = template.URL(*t.Artwork)
	}
	return v
}

// Display holds the deck mapping and the rendered overlay surface.
type Display struct {
	mu       sync.RWMutex
	decks    domain.Decks
	rendered []byte
	tmpl     *template.Template
}

// NewDisplay creates a display with an empty deck mapping and renders the
// initial (all slots empty) surface.
func NewDisplay() (*Display, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/overlay.html")
	if err != nil {
		return nil, fmt.Errorf("parse overlay template: %w", err)
	}

	d := &Display{
		decks: domain.Decks{},
		tmpl:  tmpl,
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.render(); err != nil {
		return nil, err
	}
	return d, nil
}

// OnMessage decodes one feed payload and merges it into the deck mapping.
// Malformed payloads are discarded: the previous mapping instance and the
// previous rendering both survive untouched.
//
// Messages are expected to arrive from the feed's single read loop, so
// updates never overlap; the lock only guards concurrent readers.
func (d *Display) OnMessage(payload string) {
	track, err := domain.DecodeTrack([]byte(payload))
	if err != nil {
		metrics.FeedDecodeErrorsTotal.Inc()
		slog.Debug("Discarding malformed feed payload", "error", err)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.decks = d.decks.With(track)
	if err := d.render(); err != nil {
		slog.Error("Overlay render failed", "error", err)
	}
}

// render projects the current deck mapping into the overlay surface.
// Callers must hold the write lock.
func (d *Display) render() error {
	slots := make([]slotView, 0, len(slotDecks))
	for _, deck := range slotDecks {
		view := slotView{Deck: deck}
		if track, ok := d.decks.Lookup(deck); ok {
			view.Track = newCardView(track)
		}
		slots = append(slots, view)
	}

	var buf bytes.Buffer
	if err := d.tmpl.ExecuteTemplate(&buf, "overlay", slots); err != nil {
		return fmt.Errorf("render overlay: %w", err)
	}

	d.rendered = buf.Bytes()
	metrics.OverlayRendersTotal.Inc()
	return nil
}

// Rendered returns the current overlay surface.
func (d *Display) Rendered() []byte {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.rendered
}

// Decks returns the current deck mapping. The mapping is immutable; callers
// may hold onto it.
func (d *Display) Decks() domain.Decks {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.decks
}
