package listing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/normalize"
	"github.com/rpupo63/portfolio-admin/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupRequestsOneLargePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/clients/list", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "10000", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"data":{"clients":[{"id":4,"client_name":"Acme"},{"id":5,"client_name":"Globex"}]}}`))
	}))
	defer srv.Close()

	recs, err := Lookup(context.Background(), services.NewGateway(srv.URL), "tok", models.KindClients, ClientLookupLimit)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	id, ok := recs[1].ID()
	assert.True(t, ok)
	assert.Equal(t, 5, id)
}

func TestRefreshAllRunsEveryController(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Path == "/api/videos/list" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"total":0}}`))
	}))
	defer srv.Close()

	gw := services.NewGateway(srv.URL)
	websites := NewController(models.KindWebsites, gw, "tok", normalize.New())
	videos := NewController(models.KindVideos, gw, "tok", normalize.New())
	creatives := NewController(models.KindCreatives, gw, "tok", normalize.New())

	err := RefreshAll(context.Background(), websites, videos, creatives)
	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Empty(t, websites.Snapshot().Err)
	assert.Empty(t, creatives.Snapshot().Err)
	assert.Equal(t, models.KindVideos.FetchErrorMessage(), videos.Snapshot().Err)
}
