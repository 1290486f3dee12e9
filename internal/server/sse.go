package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/23bam037-tech/HITHESH-P-H/internal/events"
)

// SSE event names that are not workflow event types
const (
	sseSnapshot = "snapshot"
	sseClosed   = "closed"
)

// sseRetryMillis is the reconnect delay suggested to EventSource clients
const sseRetryMillis = 3000

// SSEWriter writes one session's event stream. Every event carries a
// sequence id so clients can tell a gap after reconnecting.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	seq     int
}

// NewSSEWriter sets the stream headers and sends the retry hint
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	if _, err := fmt.Fprintf(w, "retry: %d\n\n", sseRetryMillis); err != nil {
		return nil, err
	}
	flusher.Flush()

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteSnapshot sends the full render state, used as the first event of a stream
func (s *SSEWriter) WriteSnapshot(snapshot any) error {
	return s.write(sseSnapshot, snapshot)
}

// WriteSessionEvent sends a workflow event named after its type
func (s *SSEWriter) WriteSessionEvent(ev events.Event) error {
	return s.write(string(ev.Type), ev)
}

// WriteClosed tells the client the session is gone and the stream ends
func (s *SSEWriter) WriteClosed(sessionID string) error {
	return s.write(sseClosed, map[string]string{"session_id": sessionID})
}

// WriteHeartbeat sends a comment line that keeps idle connections open
func (s *SSEWriter) WriteHeartbeat() error {
	if _, err := fmt.Fprint(s.w, ": ping\n\n"); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func (s *SSEWriter) write(name string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	s.seq++
	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", s.seq, name, jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
