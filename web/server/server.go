package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// Request limits
const (
	maxImageSize = 1920
	maxSamples   = 1000
	maxDepth     = 500
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	staticDir string
}

// NewServer creates a new web server serving the UI from ./static
func NewServer(port int) *Server {
	return &Server{port: port, staticDir: "static"}
}

// SetStaticDir changes the directory the UI is served from
func (s *Server) SetStaticDir(dir string) {
	s.staticDir = dir
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string        `json:"scene"`   // Scene name (e.g., "random")
	Width   int           `json:"width"`   // Image width
	Height  int           `json:"height"`  // Image height
	Samples int           `json:"samples"` // Samples per pixel
	Depth   int           `json:"depth"`   // Maximum bounce depth
	Seed    int64         `json:"seed"`    // Random seed for layout and sampling
	Format  output.Format `json:"format"`  // Image encoding for /api/render
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int64   `json:"totalSamples"`
	AverageSamples   float64 `json:"averageSamples"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
	Workers          int     `json:"workers"`
	ElapsedMs        int64   `json:"elapsedMs"`
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))

	// API endpoints
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render-stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"scenes": scene.ListScenes()})
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = scene.RandomSceneName
	}

	sceneObj, err := scene.Create(sceneName, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := sceneObj.GetSamplingConfig()
	camera := sceneObj.GetCamera()
	origin, forward := camera.Origin(), camera.Forward()
	viewportWidth, viewportHeight := camera.Viewport()
	response := map[string]interface{}{
		"scene":      sceneName,
		"primitives": sceneObj.GetPrimitiveCount(),
		"camera": map[string]interface{}{
			"origin":         []float64{origin.X, origin.Y, origin.Z},
			"forward":        []float64{forward.X, forward.Y, forward.Z},
			"lensRadius":     camera.LensRadius(),
			"viewportWidth":  viewportWidth,
			"viewportHeight": viewportHeight,
		},
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": 1, "max": maxImageSize},
			"height":  map[string]int{"min": 1, "max": maxImageSize},
			"samples": map[string]int{"min": 1, "max": maxSamples},
			"depth":   map[string]int{"min": 0, "max": maxDepth},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// parseRenderRequest parses request parameters, falling back to the
// scene's own defaults for anything not given
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, *scene.Scene, error) {
	query := r.URL.Query()

	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = scene.RandomSceneName
	}

	var err error
	if req.Seed, err = parseInt64Param(query, "seed", 42); err != nil {
		return nil, nil, err
	}

	sceneObj, err := scene.Create(req.Scene, req.Seed)
	if err != nil {
		return nil, nil, err
	}
	defaults := sceneObj.GetSamplingConfig()

	if req.Width, err = parseIntParam(query, "width", defaults.Width, 1, maxImageSize); err != nil {
		return nil, nil, err
	}
	if req.Height, err = parseIntParam(query, "height", defaults.Height, 1, maxImageSize); err != nil {
		return nil, nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", defaults.SamplesPerPixel, 1, maxSamples); err != nil {
		return nil, nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", defaults.MaxDepth, 0, maxDepth); err != nil {
		return nil, nil, err
	}

	req.Format = output.PNG
	if format := query.Get("format"); format != "" {
		if req.Format, err = output.ParseFormat(format); err != nil {
			return nil, nil, err
		}
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	sceneObj.SetImageSize(req.Width, req.Height)
	sceneObj.SamplingConfig.SamplesPerPixel = req.Samples
	sceneObj.SamplingConfig.MaxDepth = req.Depth

	return req, sceneObj, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseInt64Param parses an unbounded 64-bit integer parameter
func parseInt64Param(values url.Values, key string, defaultValue int64) (int64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
