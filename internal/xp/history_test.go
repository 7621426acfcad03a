package xp

import (
	"fmt"
	"testing"
	"time"
)

func TestRecordPrependsNewestFirst(t *testing.T) {
	log := NewLog()
	log.SetNowFunc(func() time.Time { return time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC) })

	log.Record("Pomodoro Focus", 0.5)
	log.Record("Complete: Read chapter 4", 50)

	entries := log.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Description != "Complete: Read chapter 4" {
		t.Fatalf("expected newest entry first, got %q", entries[0].Description)
	}
	if entries[0].Amount != 50 {
		t.Fatalf("expected rounded amount 50, got %d", entries[0].Amount)
	}
	if entries[1].Amount != 1 {
		t.Fatalf("expected 0.5 rounded to 1, got %d", entries[1].Amount)
	}
}

func TestLogNeverExceedsMaxHistory(t *testing.T) {
	log := NewLog()
	for i := 0; i < MaxHistory*3; i++ {
		log.Record(fmt.Sprintf("award %d", i), 1)
	}
	entries := log.Entries()
	if len(entries) != MaxHistory {
		t.Fatalf("expected %d entries, got %d", MaxHistory, len(entries))
	}
	if entries[0].Description != fmt.Sprintf("award %d", MaxHistory*3-1) {
		t.Fatalf("expected newest at index 0, got %q", entries[0].Description)
	}
}

func TestRecordAssignsUniqueIDs(t *testing.T) {
	log := NewLog()
	seen := make(map[string]bool)
	for i := 0; i < 25; i++ {
		entry := log.Record("award", 1)
		if seen[entry.ID] {
			t.Fatalf("duplicate id %q", entry.ID)
		}
		seen[entry.ID] = true
	}
}

func TestClassifyUsesOrderedPrefixRules(t *testing.T) {
	cases := []struct {
		source string
		want   Category
	}{
		{"Pomodoro Focus", CategoryFocus},
		{"Pomodoro anything", CategoryFocus},
		{"Task: Focus", CategoryTask},
		{"Complete: Write essay", CategoryCompletion},
		{"Test XP", CategoryTest},
		{"Test XP bonus", CategoryGeneric},
		{"Daily login", CategoryGeneric},
	}
	for _, tc := range cases {
		if got := Classify(tc.source); got != tc.want {
			t.Fatalf("classify(%q) = %q, want %q", tc.source, got, tc.want)
		}
	}
}

func TestRestoreResumesIDsPastPersisted(t *testing.T) {
	log := NewLog()
	log.Restore([]Entry{
		{ID: "xp-7", Description: "old", Amount: 3},
		{ID: "xp-6", Description: "older", Amount: 2},
	})

	entry := log.Record("fresh", 1)
	if entry.ID != "xp-8" {
		t.Fatalf("expected xp-8 after restore, got %q", entry.ID)
	}
	entries := log.Entries()
	if len(entries) != 3 || entries[0].Description != "fresh" {
		t.Fatalf("unexpected entries after restore: %+v", entries)
	}
}
