package mocks

import (
	"context"
	"sync"

	"github.com/user/fraud-sentinel/internal/domain"
)

// MockScorer is a mock implementation of domain.Scorer for testing.
type MockScorer struct {
	ScoreResult float64
	ScoreErr    error
	Calls       []domain.Transaction
	mu          sync.Mutex
}

func (m *MockScorer) Score(ctx context.Context, tx domain.Transaction) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, tx)
	if m.ScoreErr != nil {
		return 0, m.ScoreErr
	}
	return m.ScoreResult, nil
}

// MockAlertRepository is an in-memory mock of domain.AlertRepository.
type MockAlertRepository struct {
	mu        sync.Mutex
	Alerts    map[string]*domain.Alert
	Order     []string
	CreateErr error
	FindErr   error
	ListErr   error
	UpdateErr error
}

func NewMockAlertRepository() *MockAlertRepository {
	return &MockAlertRepository{Alerts: make(map[string]*domain.Alert)}
}

func (m *MockAlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	cp := *alert
	m.Alerts[alert.ID] = &cp
	m.Order = append(m.Order, alert.ID)
	return nil
}

func (m *MockAlertRepository) FindByID(ctx context.Context, id string) (*domain.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	alert, ok := m.Alerts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *alert
	return &cp, nil
}

func (m *MockAlertRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []*domain.Alert
	for i := len(m.Order) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *m.Alerts[m.Order[i]]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockAlertRepository) Update(ctx context.Context, id string, mutate func(*domain.Alert) error) (*domain.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	alert, ok := m.Alerts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := mutate(alert); err != nil {
		return nil, err
	}
	cp := *alert
	return &cp, nil
}

// MockDecisionLogRepository is an in-memory mock of domain.DecisionLogRepository.
type MockDecisionLogRepository struct {
	mu        sync.Mutex
	Entries   []*domain.DecisionEntry
	AppendErr error
	FindErr   error
}

func (m *MockDecisionLogRepository) Append(ctx context.Context, entry *domain.DecisionEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendErr != nil {
		return m.AppendErr
	}
	cp := *entry
	m.Entries = append(m.Entries, &cp)
	return nil
}

func (m *MockDecisionLogRepository) FindByAlertID(ctx context.Context, alertID string) ([]*domain.DecisionEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	var out []*domain.DecisionEntry
	for _, e := range m.Entries {
		if e.AlertID == alertID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MockEventPublisher records published decision events.
type MockEventPublisher struct {
	mu         sync.Mutex
	Published  []domain.DecisionEvent
	PublishErr error
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.DecisionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PublishErr != nil {
		return m.PublishErr
	}
	m.Published = append(m.Published, event)
	return nil
}
