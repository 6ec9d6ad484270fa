package models

// ID identifies a stored record independently of the active backend.
// The relational store renders its BIGINT keys in decimal, the document
// store renders ObjectIDs in hex. Never parse an ID outside of a store.
type ID string

func (id ID) String() string {
	return string(id)
}

func (id ID) IsZero() bool {
	return id == ""
}
