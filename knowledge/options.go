package knowledge

import (
	"github.com/fogfish/opts"
	chromem "github.com/philippgille/chromem-go"
	"github.com/strix-ai/strix/knowledge/embedder"
)

// Options configure a Store at construction time.
type Options struct {
	// Path is the on-disk location of the persistent collection. When
	// empty, the fixed "knowledge" subpath under the process-wide base
	// storage directory is used.
	Path string

	// Collection names the backend collection, DefaultCollection when empty.
	Collection string

	// Compress enables gzip compression of the persisted entries.
	Compress bool

	// Config declaratively selects an embedding provider. Ignored when
	// EmbeddingFunc is set; nil selects the default provider.
	Config *embedder.Config

	// EmbeddingFunc overrides provider selection with an explicit
	// embedding function.
	EmbeddingFunc chromem.EmbeddingFunc
}

var (
	// WithPath sets the on-disk location of the persistent collection.
	WithPath = opts.ForName[Options, string]("Path")

	// WithCollection overrides the collection name.
	WithCollection = opts.ForName[Options, string]("Collection")

	// WithCompression toggles compression of persisted entries.
	WithCompression = opts.ForName[Options, bool]("Compress")

	// WithEmbedderConfig selects the embedding provider declaratively.
	WithEmbedderConfig = opts.ForName[Options, *embedder.Config]("Config")

	// WithEmbeddingFunc supplies the embedding function directly.
	WithEmbeddingFunc = opts.ForName[Options, chromem.EmbeddingFunc]("EmbeddingFunc")
)

// SearchParams tune a single Search call.
type SearchParams struct {
	// Limit caps the number of nearest entries retrieved.
	Limit int

	// Filter restricts candidates by exact metadata matches. It is passed
	// through verbatim to the backend predicate.
	Filter map[string]string

	// Threshold is the minimum similarity score a result must meet.
	Threshold float32
}

var (
	// WithLimit caps the number of retrieved entries, DefaultLimit if unset.
	WithLimit = opts.ForName[SearchParams, int]("Limit")

	// WithFilter restricts results to entries whose metadata matches.
	WithFilter = opts.ForName[SearchParams, map[string]string]("Filter")

	// WithScoreThreshold overrides DefaultScoreThreshold.
	WithScoreThreshold = opts.ForName[SearchParams, float32]("Threshold")
)
