package clock

import (
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 01:30 по UTC+3 — это ещё 22:30 предыдущего дня по UTC
	moment := time.Date(2024, time.June, 5, 1, 30, 0, 0, loc)

	got := Truncate(moment)
	want := time.Date(2024, time.June, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Truncate(%v) = %v, want %v", moment, got, want)
	}
}

func TestToday(t *testing.T) {
	clk := NewFixed(time.Date(2024, time.June, 5, 15, 42, 7, 0, time.UTC))

	got := Today(clk)
	want := time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Today() = %v, want %v", got, want)
	}
}
