package usecase

import (
	"context"
	"testing"
	"time"

	"SwingScope/internal/domain/models"
)

type fakeReportStore struct {
	symbol string
	from   *time.Time
	to     *time.Time
	limit  int
}

func (f *fakeReportStore) Init(context.Context) error { return nil }

func (f *fakeReportStore) Save(context.Context, *models.Report) error { return nil }

func (f *fakeReportStore) Health(context.Context) error { return nil }

func (f *fakeReportStore) Close() error { return nil }

func (f *fakeReportStore) Latest(_ context.Context, symbol string) (*models.Report, error) {
	return &models.Report{Symbol: symbol}, nil
}

func (f *fakeReportStore) List(_ context.Context, symbol string, from, to *time.Time, limit int) ([]*models.Report, error) {
	f.symbol, f.from, f.to, f.limit = symbol, from, to, limit
	return []*models.Report{{Symbol: symbol}}, nil
}

func TestListThreadsRangeFilter(t *testing.T) {
	store := &fakeReportStore{}
	uc := NewReportsUseCase(testLogger(t), store)

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	if _, err := uc.List(context.Background(), "NTPC.NS", &from, &to, 5); err != nil {
		t.Fatalf("list: %v", err)
	}

	if store.symbol != "NTPC.NS" || store.limit != 5 {
		t.Fatalf("store got symbol %q limit %d", store.symbol, store.limit)
	}
	if store.from == nil || !store.from.Equal(from) {
		t.Fatalf("from not threaded, got %v", store.from)
	}
	if store.to == nil || !store.to.Equal(to) {
		t.Fatalf("to not threaded, got %v", store.to)
	}
}

func TestListDefaultsLimit(t *testing.T) {
	store := &fakeReportStore{}
	uc := NewReportsUseCase(testLogger(t), store)

	if _, err := uc.List(context.Background(), "", nil, nil, 0); err != nil {
		t.Fatalf("list: %v", err)
	}
	if store.limit != defaultReportsLimit {
		t.Fatalf("expected default limit %d, got %d", defaultReportsLimit, store.limit)
	}
}

func TestListRejectsInvertedRange(t *testing.T) {
	uc := NewReportsUseCase(testLogger(t), &fakeReportStore{})

	from := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if _, err := uc.List(context.Background(), "NTPC.NS", &from, &to, 5); err == nil {
		t.Fatal("expected an error for to before from")
	}
}
