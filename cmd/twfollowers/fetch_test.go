package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twfollowers/pkg/auth"
	"twfollowers/pkg/config"
	errs "twfollowers/pkg/errors"
	"twfollowers/pkg/ui"
)

// isolate points config discovery and credential storage at temp locations
func isolate(t *testing.T) (calls *int32, baseURL string) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv(config.BearerTokenEnv, "")
	t.Setenv("TWFOLLOWERS_BEARER_TOKEN", "")
	t.Setenv("TWFOLLOWERS_LOG_LEVEL", "error")

	ui.SetQuiet(true)
	t.Cleanup(func() { ui.SetQuiet(false) })

	prevManager := newCredentialManager
	mockManager, _ := auth.NewMockManager()
	newCredentialManager = func() (*auth.Manager, error) { return mockManager, nil }
	t.Cleanup(func() { newCredentialManager = prevManager })

	prevOpts := fetchOpts
	t.Cleanup(func() { fetchOpts = prevOpts })
	fetchOpts = fetchOptions{}

	var n int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&n, 1)
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"users":[
			{"name":"Bob","screen_name":"bob","location":null,"followers_count":10},
			{"name":"Alice","screen_name":"alice","location":"Paris","followers_count":250}
		],"next_cursor":0}`))
	}))
	t.Cleanup(server.Close)
	t.Setenv("TWFOLLOWERS_BASE_URL", server.URL)

	return &n, server.URL
}

func TestResolveUsername(t *testing.T) {
	tests := []struct {
		name     string
		flagUser string
		args     []string
		want     string
		wantType errs.ErrorType
	}{
		{name: "flag", flagUser: "jack", want: "jack"},
		{name: "positional", args: []string{"@jack"}, want: "jack"},
		{name: "flag wins", flagUser: "jack", args: []string{"other"}, want: "jack"},
		{name: "profile url", args: []string{"https://twitter.com/jack/"}, want: "jack"},
		{name: "missing", wantType: errs.ErrorTypeConfig},
		{name: "blank", flagUser: "  ", wantType: errs.ErrorTypeConfig},
		{name: "invalid", flagUser: "not a user!", wantType: errs.ErrorTypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveUsername(tt.flagUser, tt.args)
			if tt.wantType != "" {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tt.wantType))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := resolveUsername("", nil)
	assert.Equal(t, errs.ErrNoUserSpecified, err)
}

func TestCollectFlagsOnlyChanged(t *testing.T) {
	prevOpts := fetchOpts
	t.Cleanup(func() { fetchOpts = prevOpts })

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addFetchFlags(fs)
	require.NoError(t, fs.Parse([]string{"--output", "out.txt", "--rate-limit-wait", "5s", "--max-rate-limit-waits", "2"}))

	flags := collectFlags(fs)
	assert.Equal(t, "out.txt", flags["output"])
	assert.Equal(t, 5*time.Second, flags["rate-limit-wait"])
	assert.Equal(t, 2, flags["max-rate-limit-waits"])
	assert.NotContains(t, flags, "page-size")
	assert.NotContains(t, flags, "bearer-token")
}

func TestFetchFollowersWritesSortedFile(t *testing.T) {
	calls, _ := isolate(t)
	out := filepath.Join(t.TempDir(), "followers.txt")

	err := fetchFollowers(context.Background(), "jack", map[string]interface{}{
		"bearer-token": "test-token",
		"output":       out,
	})
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Name|Username|Location|Followers\nAlice|alice|Paris|250\nBob|bob||10", string(data))
}

func TestFetchFollowersUsesStoredAccount(t *testing.T) {
	isolate(t)
	manager, err := newCredentialManager()
	require.NoError(t, err)
	require.NoError(t, manager.Store(&auth.Account{Name: "work", BearerToken: "test-token"}))

	fetchOpts.account = "work"
	out := filepath.Join(t.TempDir(), "followers.txt")
	err = fetchFollowers(context.Background(), "jack", map[string]interface{}{
		"bearer-token": "ignored-token",
		"output":       out,
	})
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestFetchFollowersMissingTokenMakesNoRequest(t *testing.T) {
	calls, _ := isolate(t)
	out := filepath.Join(t.TempDir(), "followers.txt")

	err := fetchFollowers(context.Background(), "jack", map[string]interface{}{"output": out})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrorTypeConfig))
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
	assert.NoFileExists(t, out)
}

func TestFetchFollowersAuthFailureLeavesNoFile(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "followers.txt")

	err := fetchFollowers(context.Background(), "jack", map[string]interface{}{
		"bearer-token": "wrong-token",
		"output":       out,
	})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrorTypeAuth))
	assert.NoFileExists(t, out)
}

func TestRootWithoutUserFails(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bare", args: []string{}},
		{name: "fetch subcommand", args: []string{"fetch"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls, _ := isolate(t)

			rootCmd.SetArgs(tt.args)
			t.Cleanup(func() { rootCmd.SetArgs(nil) })

			err := rootCmd.Execute()
			require.Error(t, err)
			assert.Equal(t, errs.ErrNoUserSpecified, err)
			assert.Equal(t, int32(0), atomic.LoadInt32(calls))
		})
	}
}

func TestIsKnownCommand(t *testing.T) {
	assert.True(t, isKnownCommand(rootCmd, "fetch"))
	assert.True(t, isKnownCommand(rootCmd, "auth"))
	assert.True(t, isKnownCommand(rootCmd, "config"))
	assert.False(t, isKnownCommand(rootCmd, "jack"))
	assert.False(t, isKnownCommand(fetchCmd, "auth"))
}
