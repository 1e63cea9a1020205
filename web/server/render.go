package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// ProgressUpdate reports one finished scanline via SSE
type ProgressUpdate struct {
	Row       int   `json:"row"`
	Remaining int   `json:"remaining"`
	Total     int   `json:"total"`
	ElapsedMs int64 `json:"elapsedMs"`
}

// CompleteUpdate carries the finished image via SSE
type CompleteUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Stats     Stats  `json:"stats"`
}

type renderOutcome struct {
	frame *renderer.Frame
	stats renderer.RenderStats
	err   error
}

func newStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:      stats.TotalPixels,
		TotalSamples:     int64(stats.TotalSamples),
		AverageSamples:   stats.AverageSamples(),
		SamplesPerSecond: stats.SamplesPerSecond(),
		Workers:          stats.Workers,
		ElapsedMs:        stats.Duration.Milliseconds(),
	}
}

// handleRender renders a scene and returns the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	logger := NewWebLogger(fmt.Sprintf("%s-%d", req.Scene, req.Seed), nil)
	raytracer := renderer.NewRaytracer(sceneObj, logger)
	raytracer.SetProgressCallback(nil)

	// Use request context to stop rendering when the client disconnects
	frame, stats, err := raytracer.Render(r.Context())
	if err != nil {
		log.Printf("Render error: %v", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := output.Write(&buf, frame, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Failed to write image: %v", err)
	}
}

// handleRenderStream renders a scene and streams console output and
// scanline progress via SSE, ending with the PNG-encoded image
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	if _, ok := w.(http.Flusher); !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}
	s.setSSEHeaders(w)

	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	ctx := r.Context()
	startTime := time.Now()

	// Each row reports exactly once, so a channel of Height never blocks
	progressChan := make(chan ProgressUpdate, req.Height)
	consoleChan := make(chan ConsoleMessage, 100)

	raytracer := renderer.NewRaytracer(sceneObj, NewWebLogger(fmt.Sprintf("%s-%d", req.Scene, req.Seed), consoleChan))
	raytracer.SetProgressCallback(func(row, remaining int) {
		progressChan <- ProgressUpdate{
			Row:       row,
			Remaining: remaining,
			Total:     req.Height,
			ElapsedMs: time.Since(startTime).Milliseconds(),
		}
	})

	done := make(chan renderOutcome, 1)
	go func() {
		frame, stats, err := raytracer.Render(ctx)
		done <- renderOutcome{frame: frame, stats: stats, err: err}
	}()

	for {
		select {
		case msg := <-consoleChan:
			s.sendSSEJSON(w, "console", msg)
		case update := <-progressChan:
			s.sendSSEJSON(w, "progress", update)
		case outcome := <-done:
			s.drainEvents(w, progressChan, consoleChan)
			s.finishStream(w, outcome)
			return
		}
	}
}

// drainEvents sends whatever was queued before the render returned
func (s *Server) drainEvents(w http.ResponseWriter, progressChan <-chan ProgressUpdate, consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case update := <-progressChan:
			s.sendSSEJSON(w, "progress", update)
		case msg := <-consoleChan:
			s.sendSSEJSON(w, "console", msg)
		default:
			return
		}
	}
}

func (s *Server) finishStream(w http.ResponseWriter, outcome renderOutcome) {
	if outcome.err != nil {
		s.sendSSEError(w, fmt.Sprintf("Render error: %v", outcome.err))
		return
	}

	var buf bytes.Buffer
	if err := output.Write(&buf, outcome.frame, output.PNG); err != nil {
		s.sendSSEError(w, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	s.sendSSEJSON(w, "complete", CompleteUpdate{
		ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Width:     outcome.frame.Width,
		Height:    outcome.frame.Height,
		Stats:     newStats(outcome.stats),
	})
}

func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendSSEJSON sends a JSON-encoded SSE event
func (s *Server) sendSSEJSON(w http.ResponseWriter, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, event, string(data))
}

// sendSSEError sends an error via SSE
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}
