package history

import (
	"context"
	"testing"
	"time"
)

func TestRecordAndRecent(t *testing.T) {
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	older := Scan{
		Source:    "token.sol",
		Threshold: 0.5,
		Labels:    []string{"Reentrancy: external call before state update"},
		Probs:     []float64{0.91, 0.02},
		CreatedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	newer := Scan{
		Source:    "vault.sol",
		Threshold: 0.7,
		Labels:    nil,
		Probs:     []float64{0.1},
		CreatedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
	}

	if err := store.Record(ctx, older); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record(ctx, newer); err != nil {
		t.Fatalf("Record: %v", err)
	}

	scans, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(scans) != 2 {
		t.Fatalf("expected 2 scans, got %d", len(scans))
	}
	if scans[0].Source != "vault.sol" {
		t.Errorf("newest first: got %q", scans[0].Source)
	}
	if scans[0].ID == "" {
		t.Error("expected generated id")
	}
	if len(scans[1].Labels) != 1 || scans[1].Labels[0] != older.Labels[0] {
		t.Errorf("labels round-trip: got %v", scans[1].Labels)
	}
	if len(scans[1].Probs) != 2 || scans[1].Probs[0] != 0.91 {
		t.Errorf("probs round-trip: got %v", scans[1].Probs)
	}
	if scans[1].Threshold != 0.5 {
		t.Errorf("threshold: got %v", scans[1].Threshold)
	}
}

func TestRecentLimit(t *testing.T) {
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := store.Record(ctx, Scan{Source: "a.sol", Threshold: 0.5}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	scans, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(scans) != 3 {
		t.Errorf("limit not applied: got %d", len(scans))
	}
}

func TestRecentEmpty(t *testing.T) {
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer store.Close()

	scans, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(scans) != 0 {
		t.Errorf("expected no scans, got %d", len(scans))
	}
}
