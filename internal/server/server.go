package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"reflect"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/danielgtaylor/humaclient"

	"github.com/geoplat/tilecover/internal/api"
	"github.com/geoplat/tilecover/internal/api/editor"
	"github.com/geoplat/tilecover/internal/db"
	"github.com/geoplat/tilecover/internal/humastar"
	"github.com/geoplat/tilecover/internal/offline"
	"github.com/geoplat/tilecover/internal/templates"
)

// Config holds the server configuration.
type Config struct {
	Host    string
	Port    string
	DataDir string
	WebDir  string // Path to web/ directory for static files and templates
}

// Server is the geo HTTP server.
type Server struct {
	config   Config
	mux      *http.ServeMux
	humaAPI  huma.API
	db       *sql.DB
	services *api.Services
	renderer *templates.Renderer
}

// New creates a new geo server.
func New(cfg Config) *Server {
	mux := http.NewServeMux()

	humaConfig := huma.DefaultConfig("tilecover API", "1.0.0")
	humaConfig.Info.Description = "Web Mercator tile cover engine: which tiles does a geometry touch at a zoom level, and a catalog of offline region definitions built on the same algorithm."
	humaConfig.Servers = []*huma.Server{
		{URL: fmt.Sprintf("http://%s:%s", cfg.Host, cfg.Port), Description: "Local server"},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, humastar.LinkTransformer())

	humaAPI := humago.New(mux, humaConfig)

	var conn *sql.DB
	if c, err := db.Get(db.Config{DataDir: cfg.DataDir, DBName: "geo"}); err == nil {
		conn = c
	}

	var store *offline.Store
	if conn != nil {
		if s, err := offline.NewStore(context.Background(), conn); err == nil {
			store = s
		}
	}

	services := &api.Services{
		Offline: store,
		DB:      conn,
		DataDir: cfg.DataDir,
	}

	var renderer *templates.Renderer
	if cfg.WebDir != "" {
		fragmentsDir := filepath.Join(cfg.WebDir, "templates", "fragments")
		if r, err := templates.New(fragmentsDir); err == nil {
			renderer = r
		}
	}

	s := &Server{
		config:   cfg,
		mux:      mux,
		humaAPI:  humaAPI,
		db:       conn,
		services: services,
		renderer: renderer,
	}

	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close closes server resources.
func (s *Server) Close() error {
	return db.Close()
}

// OpenAPI returns the server's generated OpenAPI document, for the `spec`
// CLI subcommand.
func (s *Server) OpenAPI() *huma.OpenAPI {
	return s.humaAPI.OpenAPI()
}

// GenerateClient writes a typed Go client SDK for the current API into
// outDir, for the `gen-client` CLI subcommand.
func (s *Server) GenerateClient(outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("gen-client: %w", err)
	}
	return humaclient.Generate(s.humaAPI.OpenAPI(), humaclient.Config{
		PackageName: "geoclient",
		OutputDir:   outDir,
	})
}

func (s *Server) routes() {
	api.RegisterRoutes(s.humaAPI, s.services)

	if s.renderer != nil {
		coverageHandler := editor.NewCoverageHandler(s.services.Offline, s.renderer)
		coverageHandler.RegisterRoutes(s.humaAPI)

		humastar.InjectExtensions(s.humaAPI, []humastar.DatastarSchemaConfig{
			{
				Type:     reflect.TypeOf(api.RegionCreateBody{}),
				Prefix:   "newregion",
				FormTmpl: "region-form",
				BasePath: "/api/v1/offline/regions",
				GoPkg:    "offline",
			},
		})
		humastar.RegisterFormTemplates(s.humaAPI, s.renderer)
	}

	humastar.AutoLinks(s.humaAPI)

	if s.config.WebDir != "" {
		staticDir := filepath.Join(s.config.WebDir, "static")
		s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

		tilesDir := filepath.Join(s.config.DataDir, "tiles")
		s.mux.Handle("/tiles/", http.StripPrefix("/tiles/", s.handleTiles(tilesDir)))
	}

	s.mux.HandleFunc("/viewer", s.handleViewer)
	s.mux.HandleFunc("/editor", s.handleEditor)
	s.mux.HandleFunc("/", s.handleRoot)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	for _, link := range humastar.RootLinks() {
		w.Header().Add("Link", link)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"service": "tilecover",
		"status":  "running",
	})
}

func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request) {
	templatePath := filepath.Join(s.config.WebDir, "templates", "viewer.html")
	http.ServeFile(w, r, templatePath)
}

func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request) {
	templatePath := filepath.Join(s.config.WebDir, "templates", "editor.html")
	http.ServeFile(w, r, templatePath)
}

func (s *Server) handleTiles(tilesDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Range")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Range, Accept-Ranges")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		http.FileServer(http.Dir(tilesDir)).ServeHTTP(w, r)
	})
}
