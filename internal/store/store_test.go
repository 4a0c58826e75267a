package store

import (
	"path/filepath"
	"testing"
	"time"

	"seeker/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestInsertAndSelectAll(t *testing.T) {
	repo := newTestRepo(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	first, err := repo.Insert(Project{Name: "seeker", Path: "/src/seeker", CreatedAt: base})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	second, err := repo.Insert(Project{Path: "/src/other", CreatedAt: base.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, "other", second.Name, "name defaults to the base name")

	projects, err := repo.SelectAll()
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, second.ID, projects[0].ID, "newest first")
	assert.Equal(t, "seeker", projects[1].Name)
	assert.Equal(t, "/src/seeker", projects[1].Path)
	assert.True(t, projects[1].CreatedAt.Equal(base))
}

func TestInsertRejects(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Insert(Project{Path: "  "})
	assert.True(t, errors.IsInvalidInputError(err))

	_, err = repo.Insert(Project{Path: "/dup"})
	require.NoError(t, err)
	_, err = repo.Insert(Project{Path: "/dup"})
	require.Error(t, err)
	assert.True(t, errors.IsDatabaseError(err))

	var dbErr *errors.DatabaseError
	require.True(t, errors.As(err, &dbErr))
	assert.Equal(t, "insert", dbErr.Operation())
	assert.Equal(t, "/dup", dbErr.Context()["path"])
}

func TestFindByPath(t *testing.T) {
	repo := newTestRepo(t)

	p, err := repo.FindByPath("/nowhere")
	require.NoError(t, err)
	assert.Nil(t, p)

	inserted, err := repo.Insert(Project{Path: "/work/app"})
	require.NoError(t, err)
	p, err = repo.FindByPath("/work/app")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, inserted.ID, p.ID)
}

func TestRecordIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	repo.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	a, err := repo.Record("/work/app/")
	require.NoError(t, err)
	assert.Equal(t, "/work/app", a.Path)
	assert.Equal(t, "app", a.Name)

	b, err := repo.Record("/work/app")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	projects, err := repo.SelectAll()
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "seeker.db")

	repo, err := Open(path)
	require.NoError(t, err)
	_, err = repo.Record("/persisted")
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	projects, err := reopened.SelectAll()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "/persisted", projects[0].Path)
}

var _ Repository = (*SQLiteRepository)(nil)
