package knowledge

import (
	"context"
	"hash/fnv"
	"math"
	"path/filepath"
	"strings"
	"testing"

	chromem "github.com/philippgille/chromem-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strix-ai/strix/knowledge/embedder"
)

// wordEmbedder is a deterministic, offline embedding function: words are
// hashed onto a fixed number of axes, so texts sharing words are similar
// and identical texts embed identically.
func wordEmbedder() chromem.EmbeddingFunc {
	const dims = 64
	return func(_ context.Context, text string) ([]float32, error) {
		vec := make([]float32, dims)
		for _, word := range strings.Fields(strings.ToLower(text)) {
			h := fnv.New32a()
			_, _ = h.Write([]byte(word))
			vec[h.Sum32()%dims]++
		}
		var norm float32
		for _, v := range vec {
			norm += v * v
		}
		if norm == 0 {
			vec[0] = 1
			return vec, nil
		}
		inv := float32(1 / math.Sqrt(float64(norm)))
		for i := range vec {
			vec[i] *= inv
		}
		return vec, nil
	}
}

// axisEmbedder maps each known text to a single axis, making any two
// distinct texts exactly orthogonal.
func axisEmbedder(axes map[string]int) chromem.EmbeddingFunc {
	return func(_ context.Context, text string) ([]float32, error) {
		vec := make([]float32, len(axes)+1)
		vec[axes[text]] = 1
		return vec, nil
	}
}

func newTestStore(t *testing.T, embed chromem.EmbeddingFunc) *Store {
	t.Helper()
	store, err := New(
		WithPath(filepath.Join(t.TempDir(), "knowledge")),
		WithEmbeddingFunc(embed),
	)
	require.NoError(t, err)
	return store
}

func TestStore_SaveAndSearch(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, wordEmbedder())

	docs := []string{
		"the capital of France is Paris",
		"the grass is green in summer",
		"bananas ripen from green to yellow",
	}
	meta := map[string]string{"source": "handbook"}
	require.NoError(t, store.Save(ctx, docs, meta))

	results, err := store.Search(ctx, []string{"the capital of France is Paris"})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	top := results[0]
	assert.Equal(t, "the capital of France is Paris", top.Context)
	assert.Equal(t, meta, top.Metadata, "a single metadata mapping should apply to every document")
	assert.NotEmpty(t, top.ID)
	assert.GreaterOrEqual(t, top.Score, DefaultScoreThreshold)
}

func TestStore_Save_PositionalMetadata(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, wordEmbedder())

	docs := []string{
		"the capital of France is Paris",
		"the capital of Italy is Rome",
	}
	require.NoError(t, store.Save(ctx, docs,
		map[string]string{"country": "france"},
		map[string]string{"country": "italy"},
	))

	results, err := store.Search(ctx, []string{"the capital of Italy is Rome"}, WithLimit(1))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, map[string]string{"country": "italy"}, results[0].Metadata)
}

func TestStore_Save_MetadataMismatch(t *testing.T) {
	store := newTestStore(t, wordEmbedder())

	err := store.Save(context.Background(),
		[]string{"one", "two", "three"},
		map[string]string{"a": "1"},
		map[string]string{"b": "2"},
	)
	assert.ErrorIs(t, err, ErrMetadataMismatch)
}

func TestStore_Save_NoDocuments(t *testing.T) {
	store := newTestStore(t, wordEmbedder())
	assert.NoError(t, store.Save(context.Background(), nil))
}

func TestStore_NotInitialized(t *testing.T) {
	ctx := context.Background()
	var store Store

	err := store.Save(ctx, []string{"doc"})
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = store.Search(ctx, []string{"query"})
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestStore_ScoreThreshold(t *testing.T) {
	ctx := context.Background()
	embed := axisEmbedder(map[string]int{
		"alpha doc": 0,
		"beta doc":  1,
		"alpha":     0,
	})
	store := newTestStore(t, embed)
	require.NoError(t, store.Save(ctx, []string{"alpha doc", "beta doc"}))

	// The orthogonal document scores 0 and must be cut off.
	results, err := store.Search(ctx, []string{"alpha"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "alpha doc", results[0].Context)

	// Dropping the threshold surfaces it again.
	results, err = store.Search(ctx, []string{"alpha"}, WithScoreThreshold(-1))
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestStore_Search_OnlyFirstQuery(t *testing.T) {
	ctx := context.Background()
	embed := axisEmbedder(map[string]int{
		"alpha doc": 0,
		"beta doc":  1,
		"alpha":     0,
		"beta":      1,
	})
	store := newTestStore(t, embed)
	require.NoError(t, store.Save(ctx, []string{"alpha doc", "beta doc"}))

	results, err := store.Search(ctx, []string{"alpha", "beta"})
	require.NoError(t, err)
	require.Len(t, results, 1, "only the first query's results are surfaced")
	assert.Equal(t, "alpha doc", results[0].Context)
}

func TestStore_Search_Limit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, wordEmbedder())

	docs := []string{
		"gophers dig tunnels",
		"gophers eat roots",
		"gophers live underground",
		"gophers avoid daylight",
	}
	require.NoError(t, store.Save(ctx, docs))

	results, err := store.Search(ctx, []string{"gophers dig tunnels"}, WithLimit(2), WithScoreThreshold(0))
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// Default limit is 3, and a limit above the entry count is clamped.
	results, err = store.Search(ctx, []string{"gophers dig tunnels"}, WithScoreThreshold(0))
	require.NoError(t, err)
	assert.Len(t, results, 3)

	results, err = store.Search(ctx, []string{"gophers dig tunnels"}, WithLimit(100), WithScoreThreshold(0))
	require.NoError(t, err)
	assert.Len(t, results, len(docs))
}

func TestStore_Search_Filter(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, wordEmbedder())

	require.NoError(t, store.Save(ctx,
		[]string{"the grass is green", "the grass is dry"},
		map[string]string{"season": "summer"},
		map[string]string{"season": "winter"},
	))

	results, err := store.Search(ctx, []string{"the grass is green"},
		WithFilter(map[string]string{"season": "winter"}),
		WithScoreThreshold(0),
	)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "the grass is dry", results[0].Context)
}

func TestStore_Search_EmptyStoreAndQueries(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, wordEmbedder())

	results, err := store.Search(ctx, []string{"anything"})
	require.NoError(t, err)
	assert.Empty(t, results, "an empty store should return no matches")

	results, err = store.Search(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, wordEmbedder())

	require.NoError(t, store.Save(ctx, []string{"the sky is blue"}))
	results, err := store.Search(ctx, []string{"the sky is blue"})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	require.NoError(t, store.Reset())

	results, err = store.Search(ctx, []string{"the sky is blue"})
	require.NoError(t, err)
	assert.Empty(t, results, "a reset store should return no matches")

	// The store stays usable after a reset.
	require.NoError(t, store.Save(ctx, []string{"the sky is blue"}))
	results, err = store.Search(ctx, []string{"the sky is blue"})
	require.NoError(t, err)
	assert.NotEmpty(t, results)
}

func TestStore_Reset_Uninitialized(t *testing.T) {
	var store Store
	assert.NoError(t, store.Reset())
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "knowledge")
	embed := wordEmbedder()

	store, err := New(WithPath(path), WithEmbeddingFunc(embed))
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, []string{"the sky is blue"}, map[string]string{"source": "sensor"}))

	reopened, err := New(WithPath(path), WithEmbeddingFunc(embed))
	require.NoError(t, err)

	results, err := reopened.Search(ctx, []string{"the sky is blue"})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "the sky is blue", results[0].Context)
	assert.Equal(t, map[string]string{"source": "sensor"}, results[0].Metadata)
}

func TestNew_UnknownEmbedderProvider(t *testing.T) {
	_, err := New(
		WithPath(filepath.Join(t.TempDir(), "knowledge")),
		WithEmbedderConfig(&embedder.Config{Provider: "fastembed"}),
	)
	assert.Error(t, err)
}
