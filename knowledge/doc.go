// Package knowledge provides durable storage and similarity search over
// free-text knowledge snippets.
//
// A Store owns one named collection in an embedded vector database.
// Documents are embedded on insert by a pluggable embedding function
// (selected once at construction, see the embedder subpackage) and
// retrieved by nearest-neighbor search with a minimum-score cutoff.
// Indexing, distance computation and persistence belong to the database
// engine; this package only shapes its API to the needs of the
// orchestration layer.
//
// A Store assumes synchronous use by a single caller context; sharing one
// across goroutines requires external coordination.
package knowledge
