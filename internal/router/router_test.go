package router

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ashwinyue/next-blog/internal/config"
	"github.com/ashwinyue/next-blog/internal/handler"
	"github.com/ashwinyue/next-blog/internal/model"
	"github.com/ashwinyue/next-blog/internal/service"
	"github.com/ashwinyue/next-blog/internal/service/auth"
	"github.com/ashwinyue/next-blog/internal/testutil"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type testEnv struct {
	engine *gin.Engine
	store  *testutil.MemoryStore
	token  string
}

func newTestEnv(t *testing.T, ping pingFunc) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Auth.JWTSecret = "router-test"

	store := testutil.NewMemoryStore()
	svc := service.NewServices(store.Repositories(), cfg, nil, nil, zap.NewNop())
	if ping == nil {
		ping = func(context.Context) error { return nil }
	}
	engine := SetupRouter(handler.NewHandlers(svc, ping), svc.Auth, zap.NewNop())

	ctx := context.Background()
	_, err = svc.Auth.CreateUser(ctx, &auth.CreateUserRequest{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "admin-pass",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)

	env := &testEnv{engine: engine, store: store}
	w := testutil.PerformRequest(t, engine, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "admin@example.com", "password": "admin-pass"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data auth.LoginResponse `json:"data"`
	}
	testutil.DecodeJSON(t, w, &resp)
	env.token = resp.Data.Token
	require.NotEmpty(t, env.token)
	return env
}

func TestSyncEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)
	post := env.store.AddPost(&model.Post{
		Slug:          "hydration",
		ContentFormat: model.ContentFormatMDX,
		Status:        model.PostStatusPublished,
		Content: `<FAQSection items={[
  {question: "How much water?", answer: "About 2 litres."},
  {question: "Does coffee count?", answer: "Mostly, yes."}
]} />`,
	})
	path := "/api/v1/admin/posts/" + post.ID + "/faqs/sync"

	t.Run("requires token", func(t *testing.T) {
		w := testutil.PerformRequest(t, env.engine, http.MethodPost, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown post", func(t *testing.T) {
		w := testutil.PerformRequest(t, env.engine, http.MethodPost, "/api/v1/admin/posts/missing/faqs/sync", nil, env.token)
		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp handler.ErrorResponse
		testutil.DecodeJSON(t, w, &resp)
		assert.Equal(t, 404, resp.Code)
	})

	t.Run("sync then idempotent", func(t *testing.T) {
		w := testutil.PerformRequest(t, env.engine, http.MethodPost, path, nil, env.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				Created          int    `json:"created"`
				Updated          int    `json:"updated"`
				Deleted          int    `json:"deleted"`
				Source           string `json:"source"`
				SkippedInstances int    `json:"skipped_instances"`
			} `json:"data"`
		}
		testutil.DecodeJSON(t, w, &resp)
		assert.True(t, resp.Success)
		assert.Equal(t, 2, resp.Data.Created)
		assert.Equal(t, "content", resp.Data.Source)

		w = testutil.PerformRequest(t, env.engine, http.MethodPost, path, nil, env.token)
		require.Equal(t, http.StatusOK, w.Code)
		testutil.DecodeJSON(t, w, &resp)
		assert.Zero(t, resp.Data.Created+resp.Data.Updated+resp.Data.Deleted)
	})

	t.Run("public faqs and jsonld", func(t *testing.T) {
		w := testutil.PerformRequest(t, env.engine, http.MethodGet, "/api/v1/posts/hydration/faqs", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var list struct {
			Data []struct {
				Question string `json:"question"`
			} `json:"data"`
		}
		testutil.DecodeJSON(t, w, &list)
		require.Len(t, list.Data, 2)
		assert.Equal(t, "How much water?", list.Data[0].Question)

		w = testutil.PerformRequest(t, env.engine, http.MethodGet, "/api/v1/posts/hydration/faqs/jsonld", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/ld+json")
		assert.Contains(t, w.Body.String(), `"@type":"FAQPage"`)
	})
}

func TestPostCRUDEndpoints(t *testing.T) {
	env := newTestEnv(t, nil)

	w := testutil.PerformRequest(t, env.engine, http.MethodPost, "/api/v1/admin/posts", map[string]interface{}{
		"title":          "Vitamin D",
		"content_format": "mdx",
		"content":        `<FAQSection items={[{question: "Sun enough?", answer: "Often not."}]} />`,
		"status":         "published",
	}, env.token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			Post    model.Post `json:"post"`
			FAQSync struct {
				Created int `json:"created"`
			} `json:"faq_sync"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, w, &created)
	assert.Equal(t, "vitamin-d", created.Data.Post.Slug)
	assert.Equal(t, 1, created.Data.FAQSync.Created)

	w = testutil.PerformRequest(t, env.engine, http.MethodPost, "/api/v1/admin/posts",
		map[string]interface{}{"title": "Vitamin D"}, env.token)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = testutil.PerformRequest(t, env.engine, http.MethodPost, "/api/v1/admin/posts",
		map[string]interface{}{"content": "no title"}, env.token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.PerformRequest(t, env.engine, http.MethodGet, "/api/v1/admin/posts?page=1&size=10", nil, env.token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = testutil.PerformRequest(t, env.engine, http.MethodGet, "/api/v1/posts/vitamin-d", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sun enough?")

	w = testutil.PerformRequest(t, env.engine, http.MethodDelete, "/api/v1/admin/posts/"+created.Data.Post.ID, nil, env.token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = testutil.PerformRequest(t, env.engine, http.MethodGet, "/api/v1/posts/vitamin-d", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreviewEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)

	w := testutil.PerformRequest(t, env.engine, http.MethodPost, "/api/v1/admin/faqs/preview", map[string]string{
		"content": `<FAQSection items={[{question: "Q", answer: "A"}]} />`,
	}, env.token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"source":"content"`)
	assert.Contains(t, w.Body.String(), `"question":"Q"`)
}

func TestAuthEndpoints(t *testing.T) {
	env := newTestEnv(t, nil)

	w := testutil.PerformRequest(t, env.engine, http.MethodGet, "/api/v1/auth/me", nil, env.token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"admin"`)
	assert.NotContains(t, w.Body.String(), "password")

	w = testutil.PerformRequest(t, env.engine, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "admin@example.com", "password": "wrong-pass"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)
	w := testutil.PerformRequest(t, env.engine, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	down := newTestEnv(t, func(context.Context) error { return errors.New("connection refused") })
	w = testutil.PerformRequest(t, down.engine, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
