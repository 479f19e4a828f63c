// Package deckstate holds the mutable stores behind a deck session: the card
// provenance store and the character/equipment slot store. Neither store is
// safe for concurrent use; a session owns exactly one of each.
package deckstate
