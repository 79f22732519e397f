package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfman30/onboardai/internal/demorequest"
	"github.com/wolfman30/onboardai/pkg/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, cfg Config) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg.BaseURL = server.URL + "/api/"
	return New(cfg, logging.New("error"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestSubmitDemoRequestSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/demo-requests" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Fatalf("expected json content type, got %q", got)
		}
		var req demorequest.DemoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		writeJSON(w, http.StatusCreated, demorequest.Result{
			Success:   true,
			Message:   demorequest.SubmittedMessage,
			RequestID: "DR-ABC-0001",
			Data:      &req,
		})
	}, Config{})

	result, err := client.SubmitDemoRequest(context.Background(), demorequest.DemoRequest{
		CompanyName: "Acme", FullName: "Jane Doe", Email: "jane@acme.com",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "DR-ABC-0001", result.RequestID)
	require.NotNil(t, result.Data)
	assert.Equal(t, "Acme", result.Data.CompanyName)
}

func TestErrorBodyIsSurfaced(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"message": "Invalid email format",
			"code":    "VALIDATION_ERROR",
			"details": map[string][]string{"email": {"Please enter a valid email address"}},
		})
	}, Config{})

	_, err := client.SubmitDemoRequest(context.Background(), demorequest.DemoRequest{})
	apiErr, ok := demorequest.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, demorequest.CodeValidation, apiErr.Code)
	assert.Equal(t, "Invalid email format", apiErr.Message)
	assert.Equal(t, []string{"Please enter a valid email address"}, apiErr.Details["email"])
}

func TestErrorFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
		code    demorequest.ErrorCode
	}{
		{"plain text body", http.StatusInternalServerError, "oops", "HTTP Error: 500", demorequest.CodeHTTP},
		{"empty body", http.StatusServiceUnavailable, "", "HTTP Error: 503", demorequest.CodeHTTP},
		{"message without code", http.StatusBadRequest, `{"message":"bad input"}`, "bad input", demorequest.CodeHTTP},
		{"code without message", http.StatusNotFound, `{"code":"NOT_FOUND"}`, "HTTP Error: 404", demorequest.ErrorCode("NOT_FOUND")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, Config{})

			_, err := client.Industries(context.Background())
			apiErr, ok := demorequest.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestEmptySuccessBodyIsAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, Config{})

	result, err := client.SubmitDemoRequest(context.Background(), demorequest.DemoRequest{
		CompanyName: "Acme", FullName: "Jane Doe", Email: "jane@acme.com",
	})
	assert.Nil(t, result)
	apiErr, ok := demorequest.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, demorequest.CodeHTTP, apiErr.Code)
	assert.Equal(t, "Invalid response body", apiErr.Message)
}

func TestTimeoutMapsToTimeoutError(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, Config{Timeout: 20 * time.Millisecond})
	defer close(release)

	_, err := client.CompanySizes(context.Background())
	apiErr, ok := demorequest.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, demorequest.CodeTimeout, apiErr.Code)
	assert.Equal(t, "Request timeout", apiErr.Message)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestNetworkErrorKeepsCause(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := New(Config{BaseURL: baseURL}, logging.New("error"))
	_, err := client.Industries(context.Background())
	apiErr, ok := demorequest.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, demorequest.CodeHTTP, apiErr.Code)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestHeadersMerge(t *testing.T) {
	var got http.Header
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		writeJSON(w, http.StatusOK, map[string]any{"requests": []demorequest.StoredRequest{}})
	}, Config{Headers: http.Header{
		"X-Client":      {"demoform"},
		"Authorization": {"Bearer default"},
	}})

	records, err := client.DemoRequests(context.Background(), "admin-token")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, "demoform", got.Get("X-Client"))
	assert.Equal(t, "Bearer admin-token", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
}

func TestTimeSlotsQuery(t *testing.T) {
	var queries []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		writeJSON(w, http.StatusOK, demorequest.TimeSlots())
	}, Config{})

	slots, err := client.TimeSlots(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, slots, 7)
	_, err = client.TimeSlots(context.Background(), "2026-10-20")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "date=2026-10-20"}, queries)
}

func TestSubmitContact(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/contact" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusCreated, demorequest.ContactResult{Success: true, Message: demorequest.ContactReceivedMessage, ID: "CM-1-0001"})
	}, Config{})

	result, err := client.SubmitContact(context.Background(), demorequest.ContactMessage{Name: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "CM-1-0001", result.ID)
}

func TestNewDefaults(t *testing.T) {
	client := New(Config{}, nil)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultTimeout, client.timeout)
}
