package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yatube-lab/backend/pkg/pagecache"
	"github.com/yatube-lab/backend/pkg/testutil"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

func newTestServer(t *testing.T) *srv {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	cfg := xcontext.Configs(ctx)
	s := &srv{ctx: ctx, configs: &cfg, cache: pagecache.NewMemoryCache()}
	s.loadRenderer()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()
	return s
}

func getPage(t *testing.T, s *srv, target string) string {
	w := httptest.NewRecorder()
	s.router.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func Test_indexPageCache(t *testing.T) {
	s := newTestServer(t)

	first := getPage(t, s, "/")
	require.Contains(t, first, "Test post")

	post := *testutil.Post1
	post.Text = "Mutated post"
	require.NoError(t, s.postRepo.UpdateByID(s.ctx, post.ID, &post))
	testutil.InsertPostsOf(s.ctx, testutil.User2.ID, "", 1)

	// Within the TTL the stored page is served even though posts changed.
	require.Equal(t, first, getPage(t, s, "/"))
	require.Equal(t, first, getPage(t, s, "/?page=1"))

	require.NoError(t, s.cache.Clear(context.Background()))

	fresh := getPage(t, s, "/")
	require.NotEqual(t, first, fresh)
	require.Contains(t, fresh, "Mutated post")
	require.Contains(t, fresh, "Generated post")
	require.NotContains(t, fresh, "Test post")
}

func Test_indexPageCache_Viewer(t *testing.T) {
	s := newTestServer(t)
	getPage(t, s, "/")

	_, ok, err := s.cache.Get(context.Background(), "index_page:1")
	require.NoError(t, err)
	require.True(t, ok)

	// The cached fragment holds no viewer data, the layout is rendered per request.
	require.Contains(t, getPage(t, s, "/"), "/auth/login/")
}
