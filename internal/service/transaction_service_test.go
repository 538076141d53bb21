package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"finsight/internal/models"
	"finsight/internal/txfilter"
)

func demoResolver(store *fakeStore) *ModeResolver {
	return newResolver(
		ResolverConfig{ForceDemo: true},
		store,
		&fakePrefs{},
		&fakeUsers{},
		&fakeSession{},
		&fakeProvider{},
	)
}

func TestResolveAndFetchDemoDataset(t *testing.T) {
	store := &fakeStore{}
	svc := NewTransactionService(demoResolver(store), store, zap.NewNop())

	page, err := svc.ResolveAndFetch(context.Background(), txfilter.Filter{PageSize: 10})
	if err != nil {
		t.Fatalf("Error fetching demo page: %v", err)
	}
	if page.Mode != "demo" {
		t.Errorf("Expected demo mode marker, got %q", page.Mode)
	}
	if page.Size != 90 {
		t.Errorf("Expected the full synthetic dataset of 90 rows, got %d", page.Size)
	}
	if len(page.Data) != 10 {
		t.Errorf("Expected a 10-row page, got %d", len(page.Data))
	}
	for i := 1; i < len(page.Data); i++ {
		if page.Data[i].Date.After(page.Data[i-1].Date) {
			t.Errorf("Expected page sorted date-descending at index %d", i)
		}
	}
}

func TestResolveAndFetchDemoHonorsAccountFilter(t *testing.T) {
	store := &fakeStore{}
	svc := NewTransactionService(demoResolver(store), store, zap.NewNop())

	page, err := svc.ResolveAndFetch(context.Background(), txfilter.Filter{
		AccountIDs: []string{"demo_checking_001"},
		PageSize:   100,
	})
	if err != nil {
		t.Fatalf("Error fetching filtered demo page: %v", err)
	}
	if page.Size != 45 {
		t.Errorf("Expected 45 checking transactions, got %d", page.Size)
	}
	for _, tx := range page.Data {
		if tx.AccountID != "demo_checking_001" {
			t.Errorf("Expected only checking rows, got %s", tx.AccountID)
		}
	}
}

func TestResolveAndFetchLiveEmptyNeverServesDemoData(t *testing.T) {
	user := testUser()
	store := &fakeStore{totalCount: 0, userCounts: []int{0, 0}}
	resolver := newResolver(
		ResolverConfig{CredentialsPresent: true},
		store,
		&fakePrefs{pref: models.DemoPreferenceLive},
		&fakeUsers{},
		&fakeSession{user: user},
		&fakeProvider{},
	)
	svc := NewTransactionService(resolver, store, zap.NewNop())

	page, err := svc.ResolveAndFetch(context.Background(), txfilter.Filter{})
	if err != nil {
		t.Fatalf("Error fetching live-empty page: %v", err)
	}
	if page.Mode != "live_empty" {
		t.Errorf("Expected live_empty mode marker, got %q", page.Mode)
	}
	if page.Size != 0 || len(page.Data) != 0 {
		t.Errorf("Expected zero rows on the live-empty path, got size=%d len=%d", page.Size, len(page.Data))
	}
	if page.Message == "" {
		t.Errorf("Expected an explanatory message on the live-empty path")
	}
}
