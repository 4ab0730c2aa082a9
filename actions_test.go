package element

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_ListActions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/devices/d1/actions" {
			t.Errorf("path = %q, want %q", r.URL.Path, "/api/v1/devices/d1/actions")
		}
		setRateHeaders(w)
		json.NewEncoder(w).Encode(envelope[[]Action]{
			Body: []Action{
				{ID: "a1", Type: "send_down_frame", State: "executed"},
			},
		})
	}))
	defer server.Close()

	client, _ := NewClient("key", WithBaseURL(server.URL))
	actions, err := client.ListActions(context.Background(), "d1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(actions) != 1 || actions[0].State != "executed" {
		t.Errorf("actions = %v, want one executed action", actions)
	}
}

func TestClient_GetAction(t *testing.T) {
	t.Run("successful response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/v1/devices/d1/actions/a1" {
				t.Errorf("path = %q, want %q", r.URL.Path, "/api/v1/devices/d1/actions/a1")
			}
			setRateHeaders(w)
			json.NewEncoder(w).Encode(envelope[Action]{
				Body: Action{ID: "a1", State: "pending"},
			})
		}))
		defer server.Close()

		client, _ := NewClient("key", WithBaseURL(server.URL))
		action, err := client.GetAction(context.Background(), "d1", "a1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if action.State != "pending" {
			t.Errorf("State = %q, want %q", action.State, "pending")
		}
	})

	t.Run("empty action ID", func(t *testing.T) {
		client, _ := NewClient("key")
		_, err := client.GetAction(context.Background(), "d1", "")
		if err != ErrEmptyActionID {
			t.Errorf("expected ErrEmptyActionID, got %v", err)
		}
	})
}

func TestClient_CreateAction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if r.URL.Path != "/api/v1/devices/d1/interfaces/i1/actions" {
			t.Errorf("path = %q, want %q", r.URL.Path, "/api/v1/devices/d1/interfaces/i1/actions")
		}

		var req struct {
			Action ActionCreate `json:"action"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Action.Type != "send_down_frame" {
			t.Errorf("Type = %q, want %q", req.Action.Type, "send_down_frame")
		}

		setRateHeaders(w)
		json.NewEncoder(w).Encode(envelope[Action]{
			Body: Action{ID: "a-new", Type: req.Action.Type, State: "created"},
		})
	}))
	defer server.Close()

	client, _ := NewClient("key", WithBaseURL(server.URL))
	action, err := client.SendDownFrame(context.Background(), "d1", "i1", "0102")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action.ID != "a-new" {
		t.Errorf("ID = %q, want %q", action.ID, "a-new")
	}
}
