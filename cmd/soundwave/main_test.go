package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fakeResponses = map[string]string{
	"chart.gettopartists": `{"artists":{"artist":[{"name":"Cher","playcount":"1234567"}]}}`,
	"chart.gettoptracks":  `{"tracks":{"track":[{"name":"Believe","artist":{"name":"Cher"}}]}}`,
	"chart.gettoptags":    `{"tags":{"tag":[{"name":"rock","reach":"1000"}]}}`,
	"artist.getinfo":      `{"artist":{"bio":{"summary":"Cher is an American singer. <a href=\"https://www.last.fm/music/Cher\">Read more on Last.fm</a>"}}}`,
}

// runCommand executes the root command against a fake Last.fm API and
// returns what it printed.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := fakeResponses[r.URL.Query().Get("method")]
		if !ok {
			http.Error(w, `{"error":6,"message":"not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "log_level: error\nlastfm:\n  api_key: test-key\n  base_url: " + server.URL + "/\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", path}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestChartsCommand(t *testing.T) {
	out, err := runCommand(t, "charts")
	require.NoError(t, err)

	assert.Contains(t, out, "Artistas mais escutados")
	assert.Contains(t, out, "1. Cher  1.234.567 reproduções  [Artista]")
	assert.Contains(t, out, "1. Believe  Cher  [Música]")
	assert.Contains(t, out, "rock")
}

func TestAboutCommand(t *testing.T) {
	out, err := runCommand(t, "about", "artist", "Cher")
	require.NoError(t, err)

	assert.Contains(t, out, "Cher [Artista]")
	assert.Contains(t, out, "Cher is an American singer.")
	assert.NotContains(t, out, "<a href")
}

func TestAboutCommand_UnknownKind(t *testing.T) {
	_, err := runCommand(t, "about", "playlist", "Mix")
	assert.ErrorContains(t, err, "unknown kind")
}

func TestSetupLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "warn", want: zerolog.WarnLevel},
		{level: "error", want: zerolog.ErrorLevel},
		{level: "", want: zerolog.InfoLevel},
		{level: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, closer := setupLogger("", tt.level)
			defer closer.Close()
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestSetupLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soundwave.log")

	logger, closer := setupLogger(path, "info")
	logger.Info().Msg("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
}
