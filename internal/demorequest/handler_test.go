package demorequest

import (
	"bytes"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wolfman30/onboardai/pkg/logging"
)

func newTestHandler(t *testing.T) (*Handler, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	svc := NewService(store, logging.New("error"), WithRandom(rand.New(rand.NewPCG(1, 1))))
	return NewHandler(svc, logging.New("error"), nil), store
}

func TestSubmitDemoRequest_Success(t *testing.T) {
	handler, store := newTestHandler(t)

	body, _ := json.Marshal(validRequest())
	req := httptest.NewRequest(http.MethodPost, "/demo-requests", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	var result Result
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result.Success || !requestIDPattern.MatchString(result.RequestID) {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.ScheduledDate != "" {
		t.Fatalf("expected no scheduled date, got %q", result.ScheduledDate)
	}
	if store.Len() != 1 {
		t.Fatalf("expected one stored record, got %d", store.Len())
	}
}

func TestSubmitDemoRequest_ValidationError(t *testing.T) {
	handler, _ := newTestHandler(t)

	payload := validRequest()
	payload.Email = "not-an-email"
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/demo-requests", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.SubmitDemoRequest(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error: %v", err)
	}
	if resp.Code != CodeValidation || resp.Success {
		t.Fatalf("unexpected error body %+v", resp)
	}
	if resp.Message != "Invalid email format" || resp.Error != resp.Message {
		t.Fatalf("expected message in both message and error fields, got %+v", resp)
	}
	if len(resp.Details["email"]) != 1 {
		t.Fatalf("expected one email detail, got %v", resp.Details)
	}
}

func TestSubmitDemoRequest_InvalidJSON(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/demo-requests", strings.NewReader("{"))
	w := httptest.NewRecorder()

	handler.SubmitDemoRequest(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestSubmitDemoRequest_StoreFailure(t *testing.T) {
	handler := NewHandler(NewService(failingStore{}, logging.New("error")), logging.New("error"), nil)

	body, _ := json.Marshal(validRequest())
	req := httptest.NewRequest(http.MethodPost, "/demo-requests", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.SubmitDemoRequest(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	handler, _ := newTestHandler(t)
	routes := handler.Routes()

	tests := []struct {
		path string
		want int
	}{
		{"/industries", 10},
		{"/company-sizes", 5},
		{"/timeslots", 7},
		{"/timeslots?date=2026-10-20", 7},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			routes.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
			var items []map[string]any
			if err := json.NewDecoder(w.Body).Decode(&items); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(items) != tt.want {
				t.Fatalf("expected %d items, got %d", tt.want, len(items))
			}
		})
	}
}

func TestListTimeSlots_BadDate(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/timeslots?date=10-20-2026", nil)
	w := httptest.NewRecorder()
	handler.ListTimeSlots(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}
}

func TestSubmitContact(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := `{"name":"Jane","email":"jane@acme.com","subject":"Hi","message":"Hello there"}`
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"name":"Jane"}`))
	w = httptest.NewRecorder()
	handler.SubmitContact(w, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}
}

func TestListDemoRequests(t *testing.T) {
	handler, _ := newTestHandler(t)
	routes := handler.Routes()

	for i := 0; i < 2; i++ {
		body, _ := json.Marshal(validRequest())
		w := httptest.NewRecorder()
		routes.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/demo-requests", bytes.NewReader(body)))
		if w.Code != http.StatusCreated {
			t.Fatalf("submit %d: status %d", i, w.Code)
		}
	}

	w := httptest.NewRecorder()
	handler.ListDemoRequests(w, httptest.NewRequest(http.MethodGet, "/admin/demo-requests", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp ListDemoRequestsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 || len(resp.Requests) != 2 {
		t.Fatalf("expected 2 requests, got %+v", resp)
	}
	if resp.Requests[0].ID == resp.Requests[1].ID {
		t.Fatalf("expected distinct ids")
	}
}
