package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func setupEnv(t *testing.T) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<p class="marker">279.50 Pakistani Rupees</p>`)
	}))
	t.Cleanup(server.Close)

	t.Setenv("XCHANGER_SCRAPE_BASE_URL", server.URL)
	t.Setenv("XCHANGER_EXTRACT_CLASS", "marker")
	t.Setenv("XCHANGER_CACHE_BACKEND", "memory")
	t.Setenv("XCHANGER_LOG_LEVEL", "error")
	t.Chdir(t.TempDir())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestRateCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "rate", "--amount", "2", "--from", "usd")
	require.NoError(t, err)
	assert.Equal(t, "2 USD = 279.50 PKR\n", out)
}

func TestRateCommand_Unsupported(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "rate", "--to", "XYZ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid to "XYZ"`)
}

func TestExportCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "export", "--to", "PKR", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Data saved to 1 PKR data.csv")

	_, err = os.Stat(filepath.Join(".", "1 PKR data.csv"))
	assert.NoError(t, err)
}

func TestExportCommand_BadFormat(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "export", "--format", "pdf")
	assert.Error(t, err)

	entries, err := os.ReadDir(".")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProxyCheckCommand_NoProxy(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "proxy", "check")
	require.NoError(t, err)
	assert.Equal(t, "No proxy configured\n", out)
}

func TestEnvFileMissing(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "rate", "--env-file", "missing.env")
	assert.Error(t, err)
}

func TestRateCommand_ErrorReleasesCache(t *testing.T) {
	setupEnv(t)
	t.Setenv("XCHANGER_CACHE_BACKEND", "sqlite")
	t.Setenv("XCHANGER_CACHE_PATH", filepath.Join(t.TempDir(), "url_cache.db"))

	a := &app{}
	root := a.rootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"rate", "--to", "XYZ"})

	require.Error(t, root.Execute())
	require.NotNil(t, a.client)
	assert.Nil(t, a.closeFn, "response cache should be released on failure")
	assert.Empty(t, out.String())
}

func TestInteractive(t *testing.T) {
	assert.False(t, interactive(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, interactive(f))
}
