package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// testEnv describes the sandbox created by setupTestServices.
type testEnv struct {
	dir             string
	configPath      string
	institutionsCSV string
	tramitesCSV     string
	server          *httptest.Server
}

// fakeGobEc serves two institutions (one in Azuay) and two tramites, one
// updated in 2024 and one in 2023.
func fakeGobEc() http.Handler {
	write := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/instituciones", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "0" {
			write(w, map[string]any{"results": []any{}})
			return
		}
		write(w, []map[string]any{
			{"institucion_id": "10", "nombre": "GAD Municipal de Cuenca", "provincia": "Azuay", "categoria": "GAD"},
			{"institucion_id": "20", "nombre": "Prefectura de Pichincha", "provincia": "Pichincha"},
		})
	})
	mux.HandleFunc("/tramites", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "0" {
			write(w, []any{})
			return
		}
		switch q.Get("institution") {
		case "10":
			write(w, []map[string]any{{"id": 100}, {"tramite_id": "101"}})
		case "":
			write(w, map[string]any{"results": []map[string]any{
				{"id": 100, "nombre": "Permiso de funcionamiento"},
				{"id": 101, "nombre": "Patente municipal"},
			}})
		default:
			write(w, []any{})
		}
	})
	mux.HandleFunc("/tramites/", func(w http.ResponseWriter, r *http.Request) {
		updated := map[string]string{
			"100": "2024-05-01T10:00:00Z",
			"101": "2023-11-20T08:30:00",
		}
		id := strings.TrimPrefix(r.URL.Path, "/tramites/")
		at, ok := updated[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		write(w, map[string]any{
			"nombre":      "Tramite " + id,
			"costo":       0,
			"estado":      "activo",
			"updated_at":  at,
			"institucion": map[string]any{"id": "10"},
		})
	})
	return mux
}

// setupTestServices points the CLI at a fake gob.ec server and an
// in-memory document store through a temporary config file.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{dir: t.TempDir(), server: httptest.NewServer(fakeGobEc())}
	env.configPath = filepath.Join(env.dir, "config.toml")
	env.institutionsCSV = filepath.Join(env.dir, "instituciones.csv")
	env.tramitesCSV = filepath.Join(env.dir, "tramites.csv")

	content := fmt.Sprintf(`[api]
base_url = '%s'

[scrape]
institution_delay = '0s'
tramite_delay = '0s'
institutions_csv = '%s'
tramites_csv = '%s'

[store]
kind = 'memory'
`, env.server.URL, env.institutionsCSV, env.tramitesCSV)
	require.NoError(t, os.WriteFile(env.configPath, []byte(content), 0600))

	configPath = env.configPath

	t.Cleanup(func() {
		env.server.Close()
		closeServices()
		resetFlags(rootCmd)
		configPath = ""
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})
	return env
}

// resetFlags clears flag values and Changed marks left by earlier runs.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Changed = false
		if _, ok := f.Value.(pflag.SliceValue); ok {
			return
		}
		_ = f.Value.Set(f.DefValue)
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
	scrapeProvinces = nil
	reportSearch = nil
}

// run executes the root command with args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
