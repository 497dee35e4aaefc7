package store

import (
	"fmt"

	"github.com/ritamzico/implica/internal/ident"
)

// StoreError is the error type for the graph store.
type StoreError struct {
	Kind    string
	Message string
}

func (e StoreError) Error() string {
	return fmt.Sprintf("store error (%v): %v", e.Kind, e.Message)
}

// NodeAlreadyExists is returned by AddNode when a node with the same type
// Uid has already been inserted. Existing carries the Uid of that node; the
// create-path engine swallows this error and reuses Existing.
type NodeAlreadyExists struct {
	Existing ident.Uid
}

func (e NodeAlreadyExists) Error() string {
	return fmt.Sprintf("store error (NodeAlreadyExists): node %s already exists", e.Existing.Hex())
}

func invalidTerm(msg string) error {
	return StoreError{Kind: "InvalidTerm", Message: msg}
}

func unknownNode(uid ident.Uid) error {
	return StoreError{Kind: "UnknownNode", Message: fmt.Sprintf("no node with Uid %s", uid.Hex())}
}

func unknownEdge(start, end ident.Uid) error {
	return StoreError{Kind: "UnknownEdge", Message: fmt.Sprintf("no edge from %s to %s", start.Hex(), end.Hex())}
}

func indexCorruption(msg string) error {
	return StoreError{Kind: "IndexCorruption", Message: msg}
}
