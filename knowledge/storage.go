package knowledge

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/fogfish/opts"
	chromem "github.com/philippgille/chromem-go"
	"github.com/strix-ai/strix/knowledge/embedder"
	"github.com/strix-ai/strix/pkg/paths"
	"github.com/strix-ai/strix/pkg/slogx"
	"github.com/strix-ai/strix/pkg/uuidx"
)

const (
	// DefaultCollection is the fixed name of the knowledge collection.
	DefaultCollection = "knowledge"

	// DefaultLimit caps retrieved entries per search when no limit is given.
	DefaultLimit = 3

	// DefaultScoreThreshold is the minimum similarity a search result must
	// meet when no threshold is given.
	DefaultScoreThreshold float32 = 0.35
)

var (
	// ErrNotInitialized is returned when an operation is attempted on a
	// store whose collection was never bound.
	ErrNotInitialized = errors.New("knowledge: collection not initialized")

	// ErrInitialization is returned when the backend collection cannot be
	// created or opened.
	ErrInitialization = errors.New("knowledge: failed to create or get collection")

	// ErrMetadataMismatch is returned by Save when the metadata count is
	// neither zero, one, nor the document count.
	ErrMetadataMismatch = errors.New("knowledge: metadata count does not match document count")
)

// Storage is the contract for knowledge persistence and retrieval.
type Storage interface {
	Save(ctx context.Context, documents []string, metadatas ...map[string]string) error
	Search(ctx context.Context, queries []string, options ...opts.Option[SearchParams]) ([]Result, error)
	Reset() error
}

// Result is one search hit. Score is a cosine similarity, higher is more
// similar. Results are transient and never persisted.
type Result struct {
	ID       string            `json:"id"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Context  string            `json:"context"`
	Score    float32           `json:"score"`
}

// Store persists knowledge snippets in one collection of an embedded
// vector database.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	name       string
	embed      chromem.EmbeddingFunc
}

var _ Storage = (*Store)(nil)

// New opens or creates the persistent knowledge collection and binds it to
// the returned store. The embedding function is resolved once here:
// an explicit function wins, then a declarative provider config, then the
// default provider.
func New(options ...opts.Option[Options]) (*Store, error) {
	o := Options{Collection: DefaultCollection, Compress: true}
	if err := opts.Apply(&o, options); err != nil {
		return nil, err
	}

	embed := o.EmbeddingFunc
	if embed == nil {
		var err error
		embed, err = embedder.Configure(o.Config)
		if err != nil {
			return nil, err
		}
	}

	path := o.Path
	if path == "" {
		base, err := paths.Storage()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInitialization, err)
		}
		path = filepath.Join(base, DefaultCollection)
	}

	db, err := chromem.NewPersistentDB(path, o.Compress)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitialization, err)
	}

	collection, err := db.GetOrCreateCollection(o.Collection, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitialization, err)
	}

	return &Store{
		db:         db,
		collection: collection,
		name:       o.Collection,
		embed:      embed,
	}, nil
}

// Save embeds and persists the given documents. Each document gets a fresh
// unique identifier. Metadata is optional: a single mapping applies to
// every document, a slice must align positionally with documents.
func (s *Store) Save(ctx context.Context, documents []string, metadatas ...map[string]string) error {
	if s == nil || s.collection == nil {
		return ErrNotInitialized
	}
	if len(documents) == 0 {
		return nil
	}
	if len(metadatas) > 1 && len(metadatas) != len(documents) {
		return fmt.Errorf("%w: %d metadata for %d documents", ErrMetadataMismatch, len(metadatas), len(documents))
	}

	docs := make([]chromem.Document, len(documents))
	for i, content := range documents {
		var md map[string]string
		switch {
		case len(metadatas) == 1:
			md = metadatas[0]
		case len(metadatas) > 1:
			md = metadatas[i]
		}
		docs[i] = chromem.Document{
			ID:       uuidx.NewString(),
			Content:  content,
			Metadata: md,
		}
	}

	return s.collection.AddDocuments(ctx, docs, runtime.NumCPU())
}

// Search runs a nearest-neighbor lookup for the first query string and
// returns the entries whose similarity meets the score threshold, in the
// backend's ranking order. Additional query strings beyond the first are
// accepted but not searched. Backend diagnostics are muted for the
// duration of the call.
func (s *Store) Search(ctx context.Context, queries []string, options ...opts.Option[SearchParams]) ([]Result, error) {
	if s == nil || s.collection == nil {
		return nil, ErrNotInitialized
	}

	p := SearchParams{Limit: DefaultLimit, Threshold: DefaultScoreThreshold}
	if err := opts.Apply(&p, options); err != nil {
		return nil, err
	}
	if len(queries) == 0 {
		return nil, nil
	}

	var results []Result
	err := slogx.Quiet(func() error {
		limit := p.Limit
		if count := s.collection.Count(); limit > count {
			// The backend rejects limits above the entry count.
			limit = count
		}
		if limit <= 0 {
			return nil
		}

		fetched, err := s.collection.Query(ctx, queries[0], limit, p.Filter, nil)
		if err != nil {
			return err
		}

		results = make([]Result, 0, len(fetched))
		for _, doc := range fetched {
			if doc.Similarity >= p.Threshold {
				results = append(results, Result{
					ID:       doc.ID,
					Metadata: doc.Metadata,
					Context:  doc.Content,
					Score:    doc.Similarity,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Reset wipes the entire storage backend, every collection included, and
// re-binds an empty knowledge collection. Irreversible.
func (s *Store) Reset() error {
	if s == nil || s.db == nil {
		return nil
	}
	if err := s.db.Reset(); err != nil {
		return err
	}

	// Reset drops every collection handle with it; bind a fresh one so
	// the store stays usable.
	collection, err := s.db.GetOrCreateCollection(s.name, nil, s.embed)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInitialization, err)
	}
	s.collection = collection
	return nil
}
