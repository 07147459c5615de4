package sse

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStreamSend(t *testing.T) {
	w := httptest.NewRecorder()
	s, err := NewStream(w)
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	if err := s.Send("match", map[string]string{"path": "a.txt"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "event: match\ndata: {\"path\":\"a.txt\"}\n\n") {
		t.Errorf("body = %q", body)
	}
	if !w.Flushed {
		t.Error("expected flush")
	}
}

type plainWriter struct{ http.ResponseWriter }

func TestStreamUnsupported(t *testing.T) {
	if _, err := NewStream(plainWriter{httptest.NewRecorder()}); err != ErrStreamingUnsupported {
		t.Errorf("err = %v, want ErrStreamingUnsupported", err)
	}
}
