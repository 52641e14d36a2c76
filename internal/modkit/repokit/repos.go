// Package repokit provides common types and helpers for repository implementations
package repokit

import (
	"glossrank/internal/platform/store"
)

// Queryer is the read surface SQL repos bind to
type Queryer = store.RowQuerier

type (
	// Rows are the result set of a query
	Rows = store.Rows

	// Row is a single row result from a query
	Row = store.Row
)
