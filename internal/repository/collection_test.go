package repository

import (
	"context"
	"fmt"
	"study_scholar_backend/internal/model"
	"study_scholar_backend/internal/util"
	"study_scholar_backend/pkg/kvstore"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScope() (*Scope, *kvstore.MemoryStore) {
	root := kvstore.NewMemoryStore()
	return NewScope(root, "test-device"), root
}

func ids(tests []model.GeneratedTest) []string {
	out := make([]string, len(tests))
	for i, t := range tests {
		out[i] = t.ID
	}
	return out
}

func TestCollection_ListEmpty(t *testing.T) {
	scope, _ := newTestScope()
	repo := NewMockTestRepository()

	tests, err := repo.List(context.Background(), scope)
	require.NoError(t, err)
	assert.NotNil(t, tests)
	assert.Empty(t, tests)
}

func TestCollection_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	scope, _ := newTestScope()
	repo := NewMockTestRepository()

	var want []string
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("t%d", i)
		want = append(want, id)
		require.NoError(t, repo.Append(ctx, scope, model.GeneratedTest{ID: id, Title: id}))
	}

	tests, err := repo.List(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, want, ids(tests))
}

func TestCollection_RemovePreservesOrder(t *testing.T) {
	ctx := context.Background()
	scope, _ := newTestScope()
	repo := NewMockTestRepository()

	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, repo.Append(ctx, scope, model.GeneratedTest{ID: id}))
	}

	removed, err := repo.Remove(ctx, scope, "b")
	require.NoError(t, err)
	assert.True(t, removed)

	tests, err := repo.List(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d"}, ids(tests))

	removed, err = repo.Remove(ctx, scope, "missing")
	require.NoError(t, err)
	assert.False(t, removed)
	tests, _ = repo.List(ctx, scope)
	assert.Equal(t, []string{"a", "c", "d"}, ids(tests))
}

func TestCollection_Find(t *testing.T) {
	ctx := context.Background()
	scope, _ := newTestScope()
	repo := NewNoteRepository()

	require.NoError(t, repo.Append(ctx, scope, model.UploadedNote{ID: "n1", Title: "Algebra"}))

	note, err := repo.Find(ctx, scope, "n1")
	require.NoError(t, err)
	assert.Equal(t, "Algebra", note.Title)

	_, err = repo.Find(ctx, scope, "n2")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestCollection_CorruptDocumentDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	scope, _ := newTestScope()
	repo := NewMockTestRepository()

	require.NoError(t, scope.Store.Set(ctx, util.CollectionTests, "{not json"))

	tests, err := repo.List(ctx, scope)
	require.NoError(t, err)
	assert.Empty(t, tests)

	require.NoError(t, repo.Append(ctx, scope, model.GeneratedTest{ID: "fresh"}))
	tests, err = repo.List(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, ids(tests))
}

func TestCollection_DevicesAreIsolated(t *testing.T) {
	ctx := context.Background()
	root := kvstore.NewMemoryStore()
	a := NewScope(root, "a")
	b := NewScope(root, "b")
	repo := NewNoteRepository()

	require.NoError(t, repo.Append(ctx, a, model.UploadedNote{ID: "only-a"}))

	notes, err := repo.List(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, notes)

	assert.Equal(t, DefaultDeviceID, NewScope(root, "").DeviceID)
}

func TestCollection_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	scope, _ := newTestScope()
	repo := NewMockTestRepository()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repo.Append(ctx, scope, model.GeneratedTest{ID: fmt.Sprintf("t%d", i)}))
		}(i)
	}
	wg.Wait()

	tests, err := repo.List(ctx, scope)
	require.NoError(t, err)
	assert.Len(t, tests, 20)
}

func TestProgressRepository(t *testing.T) {
	ctx := context.Background()
	scope, _ := newTestScope()
	repo := NewProgressRepository()

	_, ok, err := repo.Load(ctx, scope)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Save(ctx, scope, model.UserProgress{Streak: 3, Points: 10}))
	p, ok, err := repo.Load(ctx, scope)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, p.Streak)
	assert.NotNil(t, p.Badges)

	require.NoError(t, scope.Store.Set(ctx, util.CollectionProgress, "garbage"))
	_, ok, err = repo.Load(ctx, scope)
	require.NoError(t, err)
	assert.False(t, ok)
}
