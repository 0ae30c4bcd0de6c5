package feedback

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendPostsJSON(t *testing.T) {
	var got Report
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	relay := NewRelay(server.URL)
	report := Report{Type: TypeBug, Message: "streak shows 0 after midnight", Email: "a@b.c"}
	if err := relay.Send(context.Background(), report); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if got.Type != TypeBug || got.Message != report.Message || got.Email != report.Email {
		t.Errorf("webhook received %+v", got)
	}
}

func TestSendRejectsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	relay := NewRelay(server.URL)
	err := relay.Send(context.Background(), Report{Type: TypeOther, Message: "hi"})
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestSendRequiresWebhook(t *testing.T) {
	relay := NewRelay("")
	if err := relay.Send(context.Background(), Report{Type: TypeBug, Message: "x"}); err == nil {
		t.Error("expected error with no webhook configured")
	}
}

func TestReportValidate(t *testing.T) {
	tests := []struct {
		name   string
		report Report
		valid  bool
	}{
		{"valid bug", Report{Type: TypeBug, Message: "m"}, true},
		{"valid feature", Report{Type: TypeFeature, Message: "m"}, true},
		{"unknown type", Report{Type: "praise", Message: "m"}, false},
		{"empty message", Report{Type: TypeBug}, false},
		{"message too long", Report{Type: TypeBug, Message: strings.Repeat("a", 2001)}, false},
		{"message at limit", Report{Type: TypeBug, Message: strings.Repeat("a", 2000)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.report.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
