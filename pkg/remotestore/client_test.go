package remotestore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-studybuddy-be/internal/apperr"
)

func newStatusServer(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestGetSetStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind apperr.Kind
	}{
		{name: "forbidden is access denied", status: http.StatusForbidden, wantKind: apperr.KindAccessDenied},
		{name: "missing is not found", status: http.StatusNotFound, wantKind: apperr.KindNotFound},
		{name: "server error is a network failure", status: http.StatusInternalServerError, wantKind: apperr.KindNetworkUnavailable},
		{name: "bad gateway is a network failure", status: http.StatusBadGateway, wantKind: apperr.KindNetworkUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newStatusServer(tt.status, tt.body)
			defer srv.Close()
			client := NewClient(srv.URL, time.Second)

			_, err := client.GetSet(context.Background(), "set-1", "student@example.com")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !apperr.IsKind(err, tt.wantKind) {
				t.Errorf("got kind %q, want %q", apperr.KindOf(err), tt.wantKind)
			}
		})
	}
}

func TestClientWrapsTransportFailure(t *testing.T) {
	srv := newStatusServer(http.StatusOK, "{}")
	srv.Close() // nothing is listening anymore
	client := NewClient(srv.URL, 250*time.Millisecond)

	_, err := client.ListSets(context.Background(), "student@example.com", true)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !apperr.IsKind(err, apperr.KindNetworkUnavailable) {
		t.Errorf("got kind %q, want %q", apperr.KindOf(err), apperr.KindNetworkUnavailable)
	}
}

func TestCreateSetDecodesAssignedId(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("got method %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("got content type %q", ct)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"set-42"}`))
	}))
	defer srv.Close()
	client := NewClient(srv.URL, time.Second)

	id, err := client.CreateSet(context.Background(), &SetPayload{
		Identity: "student@example.com",
		Title:    "Biology Ch1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "set-42" {
		t.Errorf("got id %q, want set-42", id)
	}
}

func TestUnreadableSuccessBodyIsANetworkFailure(t *testing.T) {
	srv := newStatusServer(http.StatusOK, "not json at all")
	defer srv.Close()
	client := NewClient(srv.URL, time.Second)

	_, err := client.GetSet(context.Background(), "set-1", "student@example.com")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !apperr.IsKind(err, apperr.KindNetworkUnavailable) {
		t.Errorf("got kind %q, want %q", apperr.KindOf(err), apperr.KindNetworkUnavailable)
	}
}
