// Command mock-jira serves a minimal Jira REST API from JSON files on disk,
// for exercising jiralink end to end without a real server. Search results
// are paginated with startAt/maxResults the way Jira does.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/containeroo/tinyflags"
	"gopkg.in/yaml.v3"
)

// Config is the mock server configuration root.
type Config struct {
	Port    int    `yaml:"port"`
	DataDir string `yaml:"dataDir"`
}

func main() {
	var flagConfigPath string

	tf := tinyflags.NewFlagSet("mock-jira", tinyflags.ExitOnError)
	tf.StringVar(&flagConfigPath, "config", "", "Path to mock-jira config.yaml (required)").Value()

	if err := tf.Parse(os.Args[1:]); err != nil {
		log.Fatal("flag parse error:", err)
	}
	if strings.TrimSpace(flagConfigPath) == "" {
		log.Fatal("missing required --config=<path to yaml>")
	}

	cfg, err := loadConfig(flagConfigPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// absolute stays absolute
	if !filepath.IsAbs(cfg.DataDir) {
		base := filepath.Dir(flagConfigPath)
		cfg.DataDir, _ = filepath.Abs(filepath.Join(base, cfg.DataDir))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/2/project", serveFile(cfg.DataDir, "projects.json"))
	mux.HandleFunc("/rest/api/2/field", serveFile(cfg.DataDir, "fields.json"))
	mux.HandleFunc("/rest/api/2/issue/createmeta", serveFile(cfg.DataDir, "createmeta.json"))
	mux.HandleFunc("/rest/api/2/search", serveSearch(cfg.DataDir))
	mux.HandleFunc("/rest/api/2/issue", serveCreate())
	mux.HandleFunc("/rest/api/2/issue/", serveTransitions(cfg.DataDir))

	addr := ":" + strconv.Itoa(cfg.Port)
	log.Printf("Mock Jira listening on %s (data-dir: %s)", addr, cfg.DataDir)
	log.Fatal(http.ListenAndServe(addr, mux))
}

// loadConfig reads and validates the YAML configuration file.
func loadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	dec := yaml.NewDecoder(strings.NewReader(string(raw)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Port == 0 {
		cfg.Port = 8081
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = "./data"
	}
	return cfg, nil
}

// serveFile returns a handler that serves one JSON data file verbatim.
func serveFile(dataDir, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL)
		raw, err := os.ReadFile(filepath.Join(dataDir, name))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(raw) // nolint:errcheck
	}
}

// serveSearch slices issues.json into pages according to startAt/maxResults.
func serveSearch(dataDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL)
		raw, err := os.ReadFile(filepath.Join(dataDir, "issues.json"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		var issues []json.RawMessage
		if err := json.Unmarshal(raw, &issues); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		startAt := atoiDefault(r.URL.Query().Get("startAt"), 0)
		maxResults := atoiDefault(r.URL.Query().Get("maxResults"), 50)

		end := min(startAt+maxResults, len(issues))
		start := min(startAt, len(issues))

		page := map[string]any{
			"startAt":    startAt,
			"maxResults": maxResults,
			"total":      len(issues),
			"issues":     issues[start:end],
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(page) // nolint:errcheck
	}
}

// serveCreate accepts issue creation payloads and logs them.
func serveCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL)
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"10000","key":"MOCK-1"}`)) // nolint:errcheck
	}
}

// serveTransitions handles GET and POST on issue/{key}/transitions.
func serveTransitions(dataDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL)
		if !strings.HasSuffix(r.URL.Path, "/transitions") {
			http.NotFound(w, r)
			return
		}
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		serveFile(dataDir, "transitions.json")(w, r)
	}
}

// atoiDefault parses s or falls back to def.
func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
