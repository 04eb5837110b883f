package faq

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/next-blog/internal/model"
	"github.com/ashwinyue/next-blog/internal/testutil"
)

const syncBody = `Intro
<FAQSection items={[
  {question: "Is whey safe?", answer: "For **most** people."},
  {question: 'How much per day?', answer: 'About 1.6 g/kg.'},
]} />`

func newTestService(t *testing.T) (*Service, *testutil.MemoryStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := testutil.NewMemoryStore()
	svc := NewService(store.Repositories(), Options{
		SiteURL: "https://blog.example.com/",
		Cache:   NewCache(client, time.Minute),
	})
	return svc, store, mr
}

func TestService_SyncFAQs(t *testing.T) {
	svc, store, _ := newTestService(t)
	post := store.AddPost(&model.Post{
		Slug:          "whey",
		ContentFormat: model.ContentFormatMDX,
		Content:       syncBody,
		Status:        model.PostStatusPublished,
	})

	res, err := svc.SyncFAQs(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, SourceContent, res.Source)
	assert.Zero(t, res.SkippedInstances)

	rows := store.FAQs(post.ID)
	require.Len(t, rows, 2)
	assert.Equal(t, "How much per day?", rows[1].Question)

	res, err = svc.SyncFAQs(context.Background(), post.ID)
	require.NoError(t, err)
	assert.False(t, res.Changed())
}

func TestService_SyncFAQs_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.SyncFAQs(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestService_ListPublished_Cache(t *testing.T) {
	svc, store, mr := newTestService(t)
	ctx := context.Background()
	post := store.AddPost(&model.Post{
		Slug:          "whey",
		ContentFormat: model.ContentFormatMDX,
		Content:       syncBody,
		Status:        model.PostStatusPublished,
	})
	_, err := svc.SyncFAQs(ctx, post.ID)
	require.NoError(t, err)

	got, err := svc.ListPublished(ctx, "whey")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, mr.Exists(cacheKeyPrefix+"whey"))

	// 直接写库不会绕过缓存
	store.AddFAQ(post.ID, "Extra", "row", 2)
	got, err = svc.ListPublished(ctx, "whey")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// 同步会清除缓存
	_, err = svc.SyncFAQs(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, mr.Exists(cacheKeyPrefix+"whey"))
}

func TestService_ListPublished_Draft(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.AddPost(&model.Post{Slug: "draft", Status: model.PostStatusDraft})

	_, err := svc.ListPublished(context.Background(), "draft")
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.ListPublished(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestService_WithoutRedis(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := NewService(store.Repositories(), Options{})
	post := store.AddPost(&model.Post{
		Slug:          "whey",
		ContentFormat: model.ContentFormatMDX,
		Content:       syncBody,
		Status:        model.PostStatusPublished,
	})

	_, err := svc.SyncFAQs(context.Background(), post.ID)
	require.NoError(t, err)

	got, err := svc.ListPublished(context.Background(), "whey")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_JSONLD(t *testing.T) {
	svc, store, _ := newTestService(t)
	post := store.AddPost(&model.Post{
		Slug:          "whey",
		ContentFormat: model.ContentFormatMDX,
		Content:       syncBody,
		Status:        model.PostStatusPublished,
	})
	_, err := svc.SyncFAQs(context.Background(), post.ID)
	require.NoError(t, err)

	page, err := svc.JSONLD(context.Background(), "whey")
	require.NoError(t, err)
	assert.Equal(t, "FAQPage", page.Type)
	assert.Equal(t, "https://blog.example.com/blog/whey", page.URL)
	require.Len(t, page.MainEntity, 2)
	assert.Equal(t, "Is whey safe?", page.MainEntity[0].Name)
	assert.Equal(t, "<p>For <strong>most</strong> people.</p>", page.MainEntity[0].AcceptedAnswer.Text)
}

func TestService_Preview(t *testing.T) {
	svc, store, _ := newTestService(t)

	got := svc.Preview(&model.Post{ContentFormat: model.ContentFormatMDX, Content: syncBody})
	assert.Len(t, got.Items, 2)
	assert.Zero(t, store.FAQWrites)
}
