package api

import (
	"testing"
	"time"

	"github.com/nishorgo/vehicle-allocation/allocation"
)

func TestDefaultLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero uses default", 0, allocation.DefaultLimit},
		{"negative uses default", -3, allocation.DefaultLimit},
		{"explicit passes through", 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultLimit(tt.limit); got != tt.want {
				t.Fatalf("defaultLimit(%d) = %d, want %d", tt.limit, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	got, err := parseDate("")
	if err != nil || got != nil {
		t.Fatalf("parseDate(\"\") = %v, %v; want nil, nil", got, err)
	}

	got, err = parseDate("2025-11-03")
	if err != nil {
		t.Fatalf("parseDate valid: %v", err)
	}
	want := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("parseDate = %v, want %v", got, want)
	}

	for _, bad := range []string{"03-11-2025", "2025-13-40", "tomorrow"} {
		if _, err := parseDate(bad); err == nil {
			t.Fatalf("parseDate(%q) succeeded, want error", bad)
		}
	}
}

func TestStatusFromString(t *testing.T) {
	t.Parallel()

	st, err := statusFromString("")
	if err != nil || st != "" {
		t.Fatalf("empty status: got %q, %v", st, err)
	}

	st, err = statusFromString("allocated")
	if err != nil || st != allocation.StatusAllocated {
		t.Fatalf("allocated: got %q, %v", st, err)
	}

	st, err = statusFromString("cancelled")
	if err != nil || st != allocation.StatusCancelled {
		t.Fatalf("cancelled: got %q, %v", st, err)
	}

	if _, err := statusFromString("pending"); err == nil {
		t.Fatal("unknown status accepted")
	}
}
