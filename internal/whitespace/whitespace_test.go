package whitespace

import (
	"testing"
	"time"

	"triage/internal/interval"
)

var base = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

// at returns an interval on the base day between two minute offsets.
func at(startMin, endMin int) interval.Interval {
	return interval.MustNew(base.Add(time.Duration(startMin)*time.Minute), base.Add(time.Duration(endMin)*time.Minute))
}

func TestResolve(t *testing.T) {
	day := at(0, 24*60)
	busy := []interval.Interval{
		at(10*60, 11*60),       // 10:00-11:00
		at(13*60, 14*60),       // 13:00-14:00
		at(13*60+30, 14*60+15), // overlaps previous
	}
	desired := []interval.Interval{
		at(9*60, 12*60),  // 09:00-12:00
		at(13*60, 17*60), // 13:00-17:00
	}

	got := Resolve(day, busy, desired)
	want := []interval.Interval{
		at(9*60, 10*60),     // 09:00-10:00
		at(11*60, 12*60),    // 11:00-12:00
		at(14*60+15, 17*60), // 14:15-17:00
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("whitespace %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestResolve_NoBusyTime(t *testing.T) {
	day := at(0, 24*60)
	desired := []interval.Interval{at(9*60, 10*60)}

	got := Resolve(day, nil, desired)
	if len(got) != 1 || !got[0].Equal(desired[0]) {
		t.Errorf("expected %v, got %v", desired, got)
	}
}

func TestResolve_NoDesiredTime(t *testing.T) {
	got := Resolve(at(0, 24*60), []interval.Interval{at(60, 120)}, nil)
	if len(got) != 0 {
		t.Errorf("expected no whitespace, got %v", got)
	}
}

func TestResolve_BusyAllDay(t *testing.T) {
	day := at(0, 24*60)
	busy := []interval.Interval{at(-60, 25*60)}

	got := Resolve(day, busy, []interval.Interval{at(9*60, 17*60)})
	if len(got) != 0 {
		t.Errorf("expected no whitespace, got %v", got)
	}
}

func TestResolve_DesiredOrderIsKept(t *testing.T) {
	day := at(0, 24*60)
	desired := []interval.Interval{at(15*60, 16*60), at(8*60, 9*60)}

	got := Resolve(day, nil, desired)
	if len(got) != 2 || !got[0].Equal(desired[0]) || !got[1].Equal(desired[1]) {
		t.Errorf("expected %v, got %v", desired, got)
	}
}
