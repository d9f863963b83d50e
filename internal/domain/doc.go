// Package domain defines the core domain types shared across the pipeline.
//
// This package contains concept-oriented files (track.go, decks.go) with the
// wire-level Track message and the per-deck state mapping. No implementation
// code beyond decoding - just the contracts the feed, hub and overlay agree on.
package domain
