package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSE event names written by the streaming endpoint.
const (
	EventProgress = "progress"
	EventPlan     = "plan"
	EventError    = "error"
	EventComplete = "complete"
)

// SSEWriter writes Server-Sent Events with increasing ids.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	nextID  int
}

// NewSSEWriter sends the event-stream headers. It fails when w cannot flush.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &SSEWriter{w: w, flusher: flusher, nextID: 1}, nil
}

// WriteEvent sends data as one JSON-encoded event.
func (s *SSEWriter) WriteEvent(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event, err)
	}

	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", s.nextID, event, payload); err != nil {
		return err
	}
	s.nextID++
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event. Write failures are ignored; the client is gone.
func (s *SSEWriter) WriteError(message string) {
	_ = s.WriteEvent(EventError, map[string]string{"error": message})
}

// WriteComplete sends the terminal event of a stream.
func (s *SSEWriter) WriteComplete(runID, status string) {
	_ = s.WriteEvent(EventComplete, map[string]string{
		"run_id": runID,
		"status": status,
	})
}
