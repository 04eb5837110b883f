package migration

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/next-blog/internal/model"
	"github.com/ashwinyue/next-blog/internal/service/file"
	"github.com/ashwinyue/next-blog/internal/testutil"
)

const legacyTag = `<PostImage slug="p" src="https://res.cloudinary.com/p.jpg" alt="P" variant="wide" />`

func fixedClock() func() time.Time {
	t := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func TestService_RewritePostImages(t *testing.T) {
	store := testutil.NewMemoryStore()
	store.AddPost(&model.Post{ID: "a", Title: "Protein Myths", Slug: "a", Content: "intro " + legacyTag})
	store.AddPost(&model.Post{ID: "b", Title: "Plain", Slug: "b", Content: "nothing to do"})
	store.AddPost(&model.Post{ID: "c", Title: "Gut Health", Slug: "c", Content: legacyTag + legacyTag})

	svc := NewService(store.Repositories(), NewImageRewriter(cdn, 0, 0), nil,
		WithBatchSize(2), WithClock(fixedClock()))

	manifest, err := svc.RewritePostImages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, manifest.TotalPosts)
	assert.Equal(t, 2, manifest.UpdatedCount)
	assert.Zero(t, manifest.FailedCount)
	assert.Equal(t, []string{"Protein Myths", "Gut Health"}, manifest.UpdatedPosts)
	assert.Equal(t, []UpdatedPost{
		{ID: "a", Slug: "a", Replacements: 1},
		{ID: "c", Slug: "c", Replacements: 2},
	}, manifest.UpdatedDetails)
	assert.Empty(t, manifest.FailedPosts)

	assert.Equal(t, `intro <Image src="https://res.cloudinary.com/p.jpg" alt="P" width={800} height={450} />`, store.Post("a").Content)
	assert.Equal(t, "nothing to do", store.Post("b").Content)

	// 再次运行没有改动
	manifest, err = svc.RewritePostImages(context.Background())
	require.NoError(t, err)
	assert.Zero(t, manifest.UpdatedCount)
}

func TestService_RewritePostImages_FailureContinues(t *testing.T) {
	store := testutil.NewMemoryStore()
	store.AddPost(&model.Post{ID: "a", Slug: "a", Content: legacyTag})
	store.AddPost(&model.Post{ID: "b", Slug: "b", Content: legacyTag})
	store.AddPost(&model.Post{ID: "c", Slug: "c", Content: legacyTag})
	store.UpdateContentErr = func(id string) error {
		if id == "b" {
			return errors.New("deadlock detected")
		}
		return nil
	}

	svc := NewService(store.Repositories(), NewImageRewriter(cdn, 0, 0), nil)
	manifest, err := svc.RewritePostImages(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, manifest.TotalPosts)
	assert.Equal(t, 2, manifest.UpdatedCount)
	assert.Equal(t, 1, manifest.FailedCount)
	assert.Equal(t, []FailedPost{{ID: "b", Slug: "b", Error: "deadlock detected"}}, manifest.FailedPosts)
	assert.Equal(t, legacyTag, store.Post("b").Content)
	assert.NotEqual(t, legacyTag, store.Post("c").Content)
}

func TestService_RewritePostImages_ArchivesManifest(t *testing.T) {
	store := testutil.NewMemoryStore()
	store.AddPost(&model.Post{ID: "a", Title: "Sleep and Recovery", Slug: "a", Content: legacyTag})

	dir := t.TempDir()
	storage, err := file.NewLocalStorage(dir, "/reports")
	require.NoError(t, err)

	svc := NewService(store.Repositories(), NewImageRewriter(cdn, 0, 0), nil,
		WithStorage(storage), WithClock(fixedClock()))
	manifest, err := svc.RewritePostImages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "migrations/image-rewrite-20240501T120000Z.json", manifest.ReportPath)
	assert.Equal(t, "/reports/migrations/image-rewrite-20240501T120000Z.json", manifest.ReportURL)

	data, err := os.ReadFile(filepath.Join(dir, "migrations", "image-rewrite-20240501T120000Z.json"))
	require.NoError(t, err)

	var archived map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &archived))
	assert.EqualValues(t, 1, archived["totalPosts"])
	assert.EqualValues(t, 1, archived["updatedCount"])
	assert.Equal(t, []interface{}{"Sleep and Recovery"}, archived["updatedPosts"])
	assert.Contains(t, archived, "failedPosts")
	assert.Contains(t, archived, "startedAt")
	assert.Contains(t, archived, "finishedAt")
}

func TestService_RewritePostImages_Canceled(t *testing.T) {
	store := testutil.NewMemoryStore()
	store.AddPost(&model.Post{ID: "a", Slug: "a", Content: legacyTag})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService(store.Repositories(), NewImageRewriter(cdn, 0, 0), nil)
	_, err := svc.RewritePostImages(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
