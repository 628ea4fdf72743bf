package services

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayRequestAddsBearerOnlyWithToken(t *testing.T) {
	var headers []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = append(headers, r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	gw := NewGateway(server.URL)
	ctx := context.Background()

	_, err := gw.Request(ctx, http.MethodGet, "/api/clients/list", RequestOptions{AuthToken: "tok"})
	require.NoError(t, err)
	_, err = gw.Request(ctx, http.MethodGet, server.URL+"/api/client", RequestOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer tok", ""}, headers)
}

func TestGatewayRequestSendsQueryAndJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/clients/syncing", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"clients":[{"id":1}]}`, string(body))
		w.Write([]byte(`{"message":"Synced 1 client"}`))
	}))
	defer server.Close()

	gw := NewGateway(server.URL + "/")
	resp, err := gw.Request(context.Background(), http.MethodPost, "api/clients/syncing", RequestOptions{
		Query: url.Values{"page": {"2"}},
		JSON:  map[string]any{"clients": []map[string]int{{"id": 1}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Synced 1 client", resp.Message("fallback"))
}

func TestGatewayRequestErrors(t *testing.T) {
	t.Run("message from body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"Client already exists"}`))
		}))
		defer server.Close()

		_, err := NewGateway(server.URL).Request(context.Background(), http.MethodPost, "/api/clients/create", RequestOptions{})
		var gwErr *errs.GatewayError
		require.True(t, errors.As(err, &gwErr))
		assert.Equal(t, http.StatusConflict, gwErr.StatusCode)
		assert.Equal(t, "Client already exists", gwErr.Message)
		assert.True(t, gwErr.FromBody)
	})

	t.Run("unparseable body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`<html>oops</html>`))
		}))
		defer server.Close()

		_, err := NewGateway(server.URL).Request(context.Background(), http.MethodGet, "/api/clients/list", RequestOptions{})
		var gwErr *errs.GatewayError
		require.True(t, errors.As(err, &gwErr))
		assert.Equal(t, errs.DefaultGatewayMessage, gwErr.Message)
		assert.False(t, gwErr.FromBody)
	})

	t.Run("success status with non-JSON body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>gateway login page</html>`))
		}))
		defer server.Close()

		resp, err := NewGateway(server.URL).Request(context.Background(), http.MethodGet, "/api/clients/list", RequestOptions{})
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.True(t, errs.IsJSONUnmarshalError(err))
		assert.False(t, errs.IsUpstreamStatusError(err))
	})

	t.Run("empty success body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		resp, err := NewGateway(server.URL).Request(context.Background(), http.MethodDelete, "/api/videos/3", RequestOptions{})
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, "Video deleted", resp.Message("Video deleted"))
	})

	t.Run("no retry", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := NewGateway(server.URL).Request(context.Background(), http.MethodGet, "/x", RequestOptions{})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		_, err := NewGateway(server.URL).Request(context.Background(), http.MethodGet, "/x", RequestOptions{})
		assert.True(t, errs.IsServiceUnreachableError(err))
	})
}

func TestGatewayDecodesCompressedBodies(t *testing.T) {
	payload := []byte(`{"data":{"total":3}}`)

	var gz bytes.Buffer
	gzw := gzip.NewWriter(&gz)
	gzw.Write(payload)
	gzw.Close()

	var br bytes.Buffer
	brw := brotli.NewWriter(&br)
	brw.Write(payload)
	brw.Close()

	for encoding, body := range map[string][]byte{"gzip": gz.Bytes(), "br": br.Bytes()} {
		t.Run(encoding, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.Header.Get("Accept-Encoding"), encoding)
				w.Header().Set("Content-Encoding", encoding)
				w.Write(body)
			}))
			defer server.Close()

			resp, err := NewGateway(server.URL).Request(context.Background(), http.MethodGet, "/x", RequestOptions{})
			require.NoError(t, err)
			assert.Equal(t, int64(3), resp.JSON().Get("data.total").Int())
		})
	}
}

func TestGatewayMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, []string{"Landing"}, r.MultipartForm.Value["title"])
		files := r.MultipartForm.File["files"]
		require.Len(t, files, 2)
		assert.Equal(t, "brochure.pdf", files[0].Filename)
		assert.Equal(t, "application/pdf", files[0].Header.Get("Content-Type"))
		assert.Equal(t, "thumb.png", files[1].Filename)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	form := NewMultipartForm().
		Add("title", "Landing").
		AddFile("files", File{Filename: "brochure.pdf", ContentType: "application/pdf", Content: []byte("%PDF")}).
		AddFile("files", File{Filename: "thumb.png", ContentType: "image/png", Content: []byte{0x89}})

	assert.Equal(t, []string{"Landing"}, form.Values("title"))
	assert.Len(t, form.Files("files"), 2)

	_, err := NewGateway(server.URL).Request(context.Background(), http.MethodPost, "/api/creatives", RequestOptions{Form: form})
	require.NoError(t, err)
}
