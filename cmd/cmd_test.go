package cmd

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpupo63/portfolio-admin/config"
	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/normalize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useBackend points the package settings at handler and restores them when
// the test ends.
func useBackend(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := &config.Settings{}
	s.Backend.BaseURL = srv.URL
	s.Source.ClientsURL = srv.URL + "/ext/clients"
	s.Source.ProjectsURL = srv.URL + "/ext/projects"
	s.Source.UsersURL = srv.URL + "/ext/users"

	oldSettings, oldToken := settings, tokenFlag
	settings, tokenFlag = s, "tok"
	t.Cleanup(func() { settings, tokenFlag = oldSettings, oldToken })
	return srv
}

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	c := &cobra.Command{}
	c.SetOut(buf)
	c.SetErr(buf)
	return c, buf
}

func TestRunList(t *testing.T) {
	useBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/clients/list", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"data":{"clients":[{"id":3,"client_name":"Acme","country_id":12}],"total":101}}`)
	}))
	oldPage := listPage
	listPage = 2
	t.Cleanup(func() { listPage = oldPage })

	c, out := newTestCommand()
	require.NoError(t, runList(c, []string{"Clients"}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, []string{"ID", "CLIENT_NAME", "COUNTRY_ID", "PRIORITY"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"3", "Acme", "12", "0"}, strings.Fields(lines[2]))
	assert.Equal(t, "page 2, showing 1 of 101 clients", lines[len(lines)-1])
}

func TestRunListFailure(t *testing.T) {
	useBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	c, out := newTestCommand()
	err := runList(c, []string{"videos"})

	require.Error(t, err)
	assert.True(t, errs.IsUpstreamStatusError(err))
	assert.Contains(t, out.String(), "Failed to load videos. Please try again.")
}

func TestRunSync(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ext/clients", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":[{"id":"7","clientName":"Acme"},{"id":"x","clientName":"Bad"}]}`)
	})
	mux.HandleFunc("/ext/projects", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":[{"projectName":"no id"}]}`)
	})
	mux.HandleFunc("/api/clients/syncing", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true}`)
	})
	useBackend(t, mux)
	oldShow := syncShowDropped
	syncShowDropped = true
	t.Cleanup(func() { syncShowDropped = oldShow })

	c, out := newTestCommand()
	err := runSync(c, []string{"clients", "projects"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "projects")
	output := out.String()
	assert.Contains(t, output, "clients: Clients synced successfully! (fetched 2, submitted 1, dropped 1)")
	assert.Contains(t, output, "projects: No valid projects to sync")
}

func TestRunSyncRejectsUnsyncableKind(t *testing.T) {
	c, _ := newTestCommand()
	err := runSync(c, []string{"websites"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be synced")
}

func TestRunRefreshIsolatesFailures(t *testing.T) {
	useBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/users/list" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, `{"data":{"technologies":[{"id":1,"name":"Go"}],"total":1}}`)
	}))

	c, out := newTestCommand()
	err := runRefresh(c, []string{"technologies", "users"})

	require.Error(t, err)
	output := out.String()
	assert.Contains(t, output, "technologies")
	assert.Contains(t, output, "Failed to load users. Please try again.")
}

func TestAccessToken(t *testing.T) {
	oldToken := tokenFlag
	t.Cleanup(func() { tokenFlag = oldToken })

	tokenFlag = ""
	t.Setenv("ADMIN_TOKEN", "")
	_, err := accessToken()
	assert.True(t, errs.IsMissingTokenError(err))

	t.Setenv("ADMIN_TOKEN", " env-token ")
	token, err := accessToken()
	require.NoError(t, err)
	assert.Equal(t, "env-token", token)

	tokenFlag = "flag-token"
	token, err = accessToken()
	require.NoError(t, err)
	assert.Equal(t, "flag-token", token)
}

func TestCell(t *testing.T) {
	tests := []struct {
		in       any
		expected string
	}{
		{nil, "-"},
		{"", "-"},
		{"a\tb", "a b"},
		{float64(12), "12"},
		{1.5, "1.5"},
		{true, "true"},
		{[]any{"x"}, `["x"]`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, cell(tt.in))
	}
}

func TestPrintRecordsUsesShapeColumns(t *testing.T) {
	var buf bytes.Buffer
	shape := normalize.Shape{Columns: []string{"id", "name"}}

	require.NoError(t, printRecords(&buf, shape, []normalize.Record{{"id": float64(4), "name": "Go"}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"4", "Go"}, strings.Fields(lines[2]))
}

func TestSetupLogger(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	setupLogger("DEBUG")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	setupLogger("nonsense")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestCommandsAreRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "list", "sync", "sync-runs", "refresh", "migrate"} {
		assert.True(t, names[want], want)
	}
}
