package utils

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, 1, 20, 10, 30, 0, 0, time.UTC)

func TestGenerateInternalID(t *testing.T) {
	id := GenerateInternalID(fixedNow)
	if !regexp.MustCompile(`^WH-[0-9A-Z]+-[0-9A-Z]{5}$`).MatchString(id) {
		t.Fatalf("unexpected internal id %q", id)
	}
}

func TestGenerateSerialNumber(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"Dell Laptop XPS 13", "DELLLA-"},
		{"mouse", "MOUSE-"},
		{"***", "ITEM-"},
		{"", "ITEM-"},
	}
	pattern := regexp.MustCompile(`^[0-9A-Z]+-[0-9A-Z]+-\d{3}$`)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSerialNumber(tt.name, fixedNow)
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("GenerateSerialNumber(%q) = %q, want prefix %q", tt.name, got, tt.prefix)
			}
			if !pattern.MatchString(got) {
				t.Errorf("GenerateSerialNumber(%q) = %q does not match %s", tt.name, got, pattern)
			}
		})
	}
}

func TestGenerateLocationCode(t *testing.T) {
	if got, want := GenerateLocationCode("Zone 1", 2, fixedNow), "LOC-ZON-L2-0000"; got != want {
		t.Fatalf("GenerateLocationCode = %q, want %q", got, want)
	}
	at := fixedNow.Add(1234 * time.Millisecond)
	if got, want := GenerateLocationCode("a-b", 4, at), "LOC-AB-L4-1234"; got != want {
		t.Fatalf("GenerateLocationCode = %q, want %q", got, want)
	}
}

func TestHistoryAndCommentIDs(t *testing.T) {
	if got, want := HistoryTaskID("task-1", fixedNow), "task-1-history-1705746600000"; got != want {
		t.Errorf("HistoryTaskID = %q, want %q", got, want)
	}
	if got, want := CommentID(fixedNow), "comment-1705746600000"; got != want {
		t.Errorf("CommentID = %q, want %q", got, want)
	}
}

func TestGenerateIDIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GenerateID()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestAlnumPrefix(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Warehouse A", 3, "WAR"},
		{"  x-1 y", 6, "X1Y"},
		{"Ünïcode", 3, "NCO"},
		{"", 3, ""},
	}
	for _, tt := range tests {
		if got := AlnumPrefix(tt.in, tt.n); got != tt.want {
			t.Errorf("AlnumPrefix(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestUniqueID(t *testing.T) {
	taken := map[string]bool{"comment-1": true, "comment-1-2": true}
	inUse := func(id string) bool { return taken[id] }
	if got := UniqueID("comment-1", inUse); got != "comment-1-3" {
		t.Errorf("UniqueID = %q, want comment-1-3", got)
	}
	if got := UniqueID("comment-9", inUse); got != "comment-9" {
		t.Errorf("UniqueID = %q, want the base id", got)
	}
}
