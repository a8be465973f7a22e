package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/spf13/cobra"
)

// captureStdout redirects os.Stdout to a pipe and returns a function that
// restores stdout and returns the captured output. Reads concurrently to
// avoid pipe buffer deadlocks.
func captureStdout(t *testing.T) func() string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = buf.ReadFrom(r)
		close(done)
	}()

	return func() string {
		_ = w.Close()
		<-done
		os.Stdout = old
		return buf.String()
	}
}

// newTestRootCmd creates a fresh root command pointed at the given httptest
// server. It isolates HOME so no real config is loaded.
func newTestRootCmd(t *testing.T, srv *httptest.Server, extraArgs ...string) *cobra.Command {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	rootCmd := newRootCmd()
	args := []string{"--host", srv.URL}
	rootCmd.SetArgs(append(args, extraArgs...))
	return rootCmd
}

// jsonHandler responds with the given status code and JSON body.
func jsonHandler(status int, respBody string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}
}
