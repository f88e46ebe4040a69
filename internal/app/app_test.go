package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/pagecache"
	"github.com/d60-Lab/yatube/internal/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	chdir(t, t.TempDir())
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Server.Mode = gin.TestMode
	cfg.Storage.LocalDir = t.TempDir()
	return cfg
}

func TestNewServesIndexThroughCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	db := testutil.NewDB(t)

	a, err := New(context.Background(), cfg, db, pagecache.NewMemoryStore())
	require.NoError(t, err)
	require.NotNil(t, a.PageCache)

	for _, want := range []string{"MISS", "HIT"} {
		w := httptest.NewRecorder()
		a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, w.Header().Get("X-Cache"))
	}
}

func TestNewWithoutCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	db := testutil.NewDB(t)

	a, err := New(context.Background(), cfg, db, nil)
	require.NoError(t, err)
	assert.Nil(t, a.PageCache)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Cache"))
}

func TestNewRejectsUnknownStorage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = "ftp"
	_, err := New(context.Background(), cfg, testutil.NewDB(t), nil)
	assert.Error(t, err)
}
