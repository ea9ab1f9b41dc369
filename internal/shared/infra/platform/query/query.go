// Package query composes keyword search, field filtering, sorting and
// pagination taken from raw request parameters onto a store query descriptor.
package query

import "go.mongodb.org/mongo-driver/bson"

// ---------- Descriptor ----------

// Descriptor is a lazily executed "find" query: a predicate, a sort order,
// a skip and a limit. It is a mutable builder; every method returns the
// descriptor itself so calls can be chained. Execution belongs to the store
// adapter that created it.
type Descriptor interface {
	// Where AND-combines predicate into the query. An empty predicate is a no-op.
	Where(predicate bson.M) Descriptor
	Skip(n int64) Descriptor
	Limit(n int64) Descriptor
	Sort(keys ...Sort) Descriptor
}

// ---------- Paginación / ordenamiento ----------

// OffsetPagination para paginación clásica
type OffsetPagination struct {
	Limit  int
	Offset int64
}

// Sort indica campo y dirección.
type Sort struct {
	Field string // ej. "createdAt", "price", "name"
	Desc  bool
}

// Desc builds a descending sort key.
func Desc(field string) Sort {
	return Sort{Field: field, Desc: true}
}

// Asc builds an ascending sort key.
func Asc(field string) Sort {
	return Sort{Field: field}
}
