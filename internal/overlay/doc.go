// Package overlay implements the now-playing view: it owns the per-deck
// state fed by the track feed and renders the two-slot overlay surface.
//
// The display holds a Decks mapping that is replaced (never mutated) on each
// decoded message, then re-renders the surface from the new mapping. Slot
// order is fixed: deck 3 first, then deck 2. The rendered surface is plain
// HTML served to the browser source.
package overlay
