package publishers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPPublisherSuccess(t *testing.T) {
	var received Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if got := r.Header.Get("X-Test"); got != "1" {
			t.Errorf("missing header, got %s", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type %s", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	pub, err := newHTTPPublisher(context.Background(), PublisherConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPPublisherConfig{
			URL:            srv.URL,
			Method:         http.MethodPut,
			Headers:        map[string]string{"X-Test": "1"},
			TimeoutSeconds: 2,
		},
	}, nil)
	if err != nil {
		t.Fatalf("newHTTPPublisher: %v", err)
	}

	if err := pub.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if received.StationCode != "15400000" || received.Reading.Values["nivel"] != "312" {
		t.Fatalf("server received unexpected event %+v", received)
	}
}

func TestHTTPPublisherErrorOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	pub, err := newHTTPPublisher(context.Background(), PublisherConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPPublisherConfig{
			URL:            srv.URL,
			Method:         http.MethodPost,
			TimeoutSeconds: 1,
		},
	}, nil)
	if err != nil {
		t.Fatalf("newHTTPPublisher: %v", err)
	}

	if err := pub.Publish(context.Background(), sampleEvent()); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}
