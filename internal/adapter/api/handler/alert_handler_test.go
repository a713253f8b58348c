package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/user/fraud-sentinel/internal/domain"
)

// MockPipeline is a mock implementation of PipelineUseCase.
type MockPipeline struct {
	IngestFunc   func(ctx context.Context, tx domain.Transaction) (*domain.Alert, error)
	OverrideFunc func(ctx context.Context, alertID, action string) (*domain.Alert, error)
	RecentFunc   func(ctx context.Context, limit int) ([]*domain.Alert, error)
	HistoryFunc  func(ctx context.Context, alertID string) ([]*domain.DecisionEntry, error)
}

func (m *MockPipeline) Ingest(ctx context.Context, tx domain.Transaction) (*domain.Alert, error) {
	return m.IngestFunc(ctx, tx)
}

func (m *MockPipeline) Override(ctx context.Context, alertID, action string) (*domain.Alert, error) {
	return m.OverrideFunc(ctx, alertID, action)
}

func (m *MockPipeline) RecentAlerts(ctx context.Context, limit int) ([]*domain.Alert, error) {
	return m.RecentFunc(ctx, limit)
}

func (m *MockPipeline) History(ctx context.Context, alertID string) ([]*domain.DecisionEntry, error) {
	return m.HistoryFunc(ctx, alertID)
}

func sampleAlert() *domain.Alert {
	return &domain.Alert{
		ID:        "alert-1",
		AccountID: "acc-1",
		Amount:    4200,
		Merchant:  "default",
		Score:     0.95,
		Decision:  domain.DecisionBlock,
		Reasons:   []string{domain.ReasonAutoBlock},
		CreatedAt: time.Now().UTC(),
	}
}

func newMux(h *AlertHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /transactions", h.CreateTransaction)
	mux.HandleFunc("GET /alerts", h.ListAlerts)
	mux.HandleFunc("GET /alerts/{id}/history", h.GetHistory)
	mux.HandleFunc("POST /alerts/{id}/action", h.ApplyAction)
	return mux
}

func TestAlertHandler_CreateTransaction(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		ingest         func(ctx context.Context, tx domain.Transaction) (*domain.Alert, error)
		expectedStatus int
	}{
		{
			name: "Created",
			body: `{"account_id": "acc-1", "amount": 4200}`,
			ingest: func(ctx context.Context, tx domain.Transaction) (*domain.Alert, error) {
				return sampleAlert(), nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Unknown Fields Ignored",
			body: `{"account_id": "acc-1", "amount": 4200, "channel": "pos", "card_last4": "1234"}`,
			ingest: func(ctx context.Context, tx domain.Transaction) (*domain.Alert, error) {
				return sampleAlert(), nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Account",
			body:           `{"amount": 4200}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Non-Positive Amount",
			body:           `{"account_id": "acc-1", "amount": 0}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad JSON",
			body:           `{"account_id": `,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Scoring Unavailable",
			body: `{"account_id": "acc-1", "amount": 4200}`,
			ingest: func(ctx context.Context, tx domain.Transaction) (*domain.Alert, error) {
				return nil, domain.ErrScoringUnavailable
			},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name: "Partial Write",
			body: `{"account_id": "acc-1", "amount": 4200}`,
			ingest: func(ctx context.Context, tx domain.Transaction) (*domain.Alert, error) {
				return sampleAlert(), &domain.PartialWriteError{AlertID: "alert-1", Step: "decision_log_append"}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockPipeline{IngestFunc: tt.ingest}
			h := NewAlertHandler(mock, logger)

			req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			newMux(h).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d (body: %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			if tt.expectedStatus == http.StatusCreated {
				var alert domain.Alert
				if err := json.Unmarshal(rr.Body.Bytes(), &alert); err != nil {
					t.Fatalf("failed to decode created alert: %v", err)
				}
				if alert.ID != "alert-1" {
					t.Errorf("alert id = %q, want alert-1", alert.ID)
				}
			} else {
				var errBody map[string]string
				if err := json.Unmarshal(rr.Body.Bytes(), &errBody); err != nil {
					t.Fatalf("error response is not the JSON envelope: %s", rr.Body.String())
				}
				if errBody["error"] == "" {
					t.Error("error envelope missing message")
				}
			}
		})
	}
}

func TestAlertHandler_ApplyAction(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		alertID        string
		body           string
		override       func(ctx context.Context, alertID, action string) (*domain.Alert, error)
		expectedStatus int
	}{
		{
			name:    "Approved",
			alertID: "alert-1",
			body:    `{"action": "approve"}`,
			override: func(ctx context.Context, alertID, action string) (*domain.Alert, error) {
				alert := sampleAlert()
				approved := domain.DecisionApprove
				now := time.Now().UTC()
				alert.Decision = approved
				alert.AnalystAction = &approved
				alert.ReviewedAt = &now
				return alert, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "Unknown Alert",
			alertID: "missing",
			body:    `{"action": "approve"}`,
			override: func(ctx context.Context, alertID, action string) (*domain.Alert, error) {
				return nil, domain.ErrNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:    "Invalid Action",
			alertID: "alert-1",
			body:    `{"action": "escalate"}`,
			override: func(ctx context.Context, alertID, action string) (*domain.Alert, error) {
				return nil, domain.ErrInvalidAction
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad JSON",
			alertID:        "alert-1",
			body:           `{"action": `,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockPipeline{OverrideFunc: tt.override}
			h := NewAlertHandler(mock, logger)

			req := httptest.NewRequest(http.MethodPost, "/alerts/"+tt.alertID+"/action", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			newMux(h).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d (body: %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestAlertHandler_ListAlerts(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Empty Feed Returns Array", func(t *testing.T) {
		mock := &MockPipeline{RecentFunc: func(ctx context.Context, limit int) ([]*domain.Alert, error) {
			return nil, nil
		}}
		h := NewAlertHandler(mock, logger)

		req := httptest.NewRequest(http.MethodGet, "/alerts", nil)
		rr := httptest.NewRecorder()
		newMux(h).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rr.Code)
		}
		if body := rr.Body.String(); body != "[]\n" {
			t.Errorf("empty feed body = %q, want []", body)
		}
	})

	t.Run("Invalid Limit", func(t *testing.T) {
		mock := &MockPipeline{RecentFunc: func(ctx context.Context, limit int) ([]*domain.Alert, error) {
			return nil, nil
		}}
		h := NewAlertHandler(mock, logger)

		req := httptest.NewRequest(http.MethodGet, "/alerts?limit=abc", nil)
		rr := httptest.NewRecorder()
		newMux(h).ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rr.Code)
		}
	})

	t.Run("Limit Passed Through", func(t *testing.T) {
		var gotLimit int
		mock := &MockPipeline{RecentFunc: func(ctx context.Context, limit int) ([]*domain.Alert, error) {
			gotLimit = limit
			return []*domain.Alert{sampleAlert()}, nil
		}}
		h := NewAlertHandler(mock, logger)

		req := httptest.NewRequest(http.MethodGet, "/alerts?limit=10", nil)
		rr := httptest.NewRecorder()
		newMux(h).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rr.Code)
		}
		if gotLimit != 10 {
			t.Errorf("limit = %d, want 10", gotLimit)
		}
	})
}

func TestAlertHandler_GetHistory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Found", func(t *testing.T) {
		mock := &MockPipeline{HistoryFunc: func(ctx context.Context, alertID string) ([]*domain.DecisionEntry, error) {
			return []*domain.DecisionEntry{
				{ID: "e1", AlertID: alertID, Auto: true, Reason: domain.ReasonAutoBlock},
				{ID: "e2", AlertID: alertID, Auto: false, Reason: "MANUAL_OVERRIDE_APPROVE"},
			}, nil
		}}
		h := NewAlertHandler(mock, logger)

		req := httptest.NewRequest(http.MethodGet, "/alerts/alert-1/history", nil)
		rr := httptest.NewRecorder()
		newMux(h).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rr.Code)
		}
		var entries []domain.DecisionEntry
		if err := json.Unmarshal(rr.Body.Bytes(), &entries); err != nil {
			t.Fatalf("failed to decode history: %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("expected 2 entries, got %d", len(entries))
		}
	})

	t.Run("Unknown Alert", func(t *testing.T) {
		mock := &MockPipeline{HistoryFunc: func(ctx context.Context, alertID string) ([]*domain.DecisionEntry, error) {
			return nil, domain.ErrNotFound
		}}
		h := NewAlertHandler(mock, logger)

		req := httptest.NewRequest(http.MethodGet, "/alerts/missing/history", nil)
		rr := httptest.NewRecorder()
		newMux(h).ServeHTTP(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rr.Code)
		}
	})
}
