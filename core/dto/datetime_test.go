package dto

import (
	"encoding/json"
	"testing"
)

func TestDateTimeRoundTrip(t *testing.T) {
	const wire = `"2025-02-12 14:00:00"`

	var d DateTime
	if err := json.Unmarshal([]byte(wire), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != wire {
		t.Fatalf("round trip = %s, want %s", out, wire)
	}
}

func TestParseDateTimeRejectsOtherLayouts(t *testing.T) {
	for _, in := range []string{"2025-02-12T14:00:00Z", "2025-02-12", "12/02/2025 14:00:00", ""} {
		if _, err := ParseDateTime(in); err == nil {
			t.Errorf("ParseDateTime(%q) succeeded", in)
		}
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination([]int{1, 2, 3}, 21, 2, 10)
	if p.TotalPages != 3 {
		t.Fatalf("TotalPages = %d, want 3", p.TotalPages)
	}

	empty := NewPagination[int](nil, 0, 1, 10)
	if empty.Items == nil || empty.TotalPages != 0 {
		t.Fatalf("empty page = %+v", empty)
	}
}
