// Package store abstracts the document database behind the handlers.
// Documents live in named collections, partitioned by the owning
// identity, and are replaced whole on update.
package store

import (
	"context"
	"encoding/json"
)

// Collection names used across the API.
const (
	CollectionProblems  = "problems"
	CollectionProposals = "proposals"
	CollectionUpvotes   = "upvotes"
	CollectionTips      = "tips"
	CollectionWallets   = "wallets"
	CollectionPosts     = "posts"
)

// Document is anything the store can persist.
type Document interface {
	DocID() string
	DocPartitionKey() string
}

// Filter matches documents whose top-level fields equal every entry.
// A nil filter matches the whole collection.
type Filter map[string]string

// Store is the document-database contract. Implementations return
// model.ErrNotFound and model.ErrConflict for the corresponding
// outcomes so callers can classify without driver knowledge.
type Store interface {
	// Create inserts a new document; a duplicate id in the collection
	// fails with model.ErrConflict.
	Create(ctx context.Context, collection string, doc Document) error

	// Get is a point read within one partition.
	Get(ctx context.Context, collection string, id string, partitionKey string) (json.RawMessage, error)

	// Find is a cross-partition point read by id.
	Find(ctx context.Context, collection string, id string) (json.RawMessage, error)

	// Query returns every document matching the filter.
	Query(ctx context.Context, collection string, filter Filter) ([]json.RawMessage, error)

	// Replace overwrites an existing document whole.
	Replace(ctx context.Context, collection string, doc Document) error

	// Delete removes a document from one partition.
	Delete(ctx context.Context, collection string, id string, partitionKey string) error
}
