package element

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_ListInterfaces(t *testing.T) {
	t.Run("successful response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/v1/devices/d1/interfaces" {
				t.Errorf("path = %q, want %q", r.URL.Path, "/api/v1/devices/d1/interfaces")
			}
			setRateHeaders(w)
			json.NewEncoder(w).Encode(envelope[[]DeviceInterface]{
				Body: []DeviceInterface{
					{ID: "i1", Name: "lorawan", Enabled: true},
				},
			})
		}))
		defer server.Close()

		client, _ := NewClient("key", WithBaseURL(server.URL))
		ifaces, err := client.ListInterfaces(context.Background(), "d1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(ifaces) != 1 || ifaces[0].Name != "lorawan" {
			t.Errorf("interfaces = %v, want one lorawan interface", ifaces)
		}
	})

	t.Run("empty device ID", func(t *testing.T) {
		client, _ := NewClient("key")
		_, err := client.ListInterfaces(context.Background(), "")
		if err != ErrEmptyDeviceID {
			t.Errorf("expected ErrEmptyDeviceID, got %v", err)
		}
	})
}

func TestClient_GetInterface(t *testing.T) {
	t.Run("successful response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/v1/devices/d1/interfaces/i1" {
				t.Errorf("path = %q, want %q", r.URL.Path, "/api/v1/devices/d1/interfaces/i1")
			}
			setRateHeaders(w)
			json.NewEncoder(w).Encode(envelope[DeviceInterface]{
				Body: DeviceInterface{ID: "i1", DeviceID: "d1"},
			})
		}))
		defer server.Close()

		client, _ := NewClient("key", WithBaseURL(server.URL))
		iface, err := client.GetInterface(context.Background(), "d1", "i1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if iface.ID != "i1" {
			t.Errorf("ID = %q, want %q", iface.ID, "i1")
		}
	})

	t.Run("empty interface ID", func(t *testing.T) {
		client, _ := NewClient("key")
		_, err := client.GetInterface(context.Background(), "d1", "")
		if err != ErrEmptyInterfaceID {
			t.Errorf("expected ErrEmptyInterfaceID, got %v", err)
		}
	})
}

func TestClient_CreateInterface(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}

		var req struct {
			Interface InterfaceCreate `json:"interface"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Interface.DriverInstanceID != "drv-1" {
			t.Errorf("DriverInstanceID = %q, want %q", req.Interface.DriverInstanceID, "drv-1")
		}

		setRateHeaders(w)
		json.NewEncoder(w).Encode(envelope[DeviceInterface]{
			Body: DeviceInterface{ID: "i-new", DriverInstanceID: "drv-1"},
		})
	}))
	defer server.Close()

	client, _ := NewClient("key", WithBaseURL(server.URL))
	iface, err := client.CreateInterface(context.Background(), "d1", &InterfaceCreate{
		DriverInstanceID: "drv-1",
		Enabled:          Bool(true),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iface.ID != "i-new" {
		t.Errorf("ID = %q, want %q", iface.ID, "i-new")
	}
}

func TestClient_DeleteInterface(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %q, want DELETE", r.Method)
		}
		if r.URL.Path != "/api/v1/devices/d1/interfaces/i1" {
			t.Errorf("path = %q, want %q", r.URL.Path, "/api/v1/devices/d1/interfaces/i1")
		}
		setRateHeaders(w)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, _ := NewClient("key", WithBaseURL(server.URL))
	if err := client.DeleteInterface(context.Background(), "d1", "i1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
