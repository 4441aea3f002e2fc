package code

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

const ms = time.Millisecond

func TestUnitFor(t *testing.T) {
	unit, err := UnitFor(20)
	if err != nil {
		t.Fatal(err)
	}
	if unit != 60*ms {
		t.Errorf("UnitFor(20) = %v, want 60ms", unit)
	}

	for wpm := MinWPM; wpm <= MaxWPM; wpm++ {
		unit, err := UnitFor(wpm)
		if err != nil {
			t.Fatalf("UnitFor(%d): %v", wpm, err)
		}
		total := unit * time.Duration(wpm)
		if int64(1200*ms)%int64(wpm) == 0 {
			if total != 1200*ms {
				t.Errorf("UnitFor(%d)*%d = %v, want 1.2s", wpm, wpm, total)
			}
		} else if diff := 1200*ms - total; diff < 0 || diff >= time.Duration(wpm) {
			t.Errorf("UnitFor(%d)*%d = %v, off by %v", wpm, wpm, total, diff)
		}
	}
}

func TestUnitFor_Invalid(t *testing.T) {
	for _, wpm := range []int{0, -1, MaxWPM + 1} {
		if _, err := UnitFor(wpm); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("UnitFor(%d) error = %v, want ErrInvalidRate", wpm, err)
		}
	}
}

func TestBuildSchedule_SOS(t *testing.T) {
	sched, err := BuildSchedule(Encode("SOS"), 60*ms)
	if err != nil {
		t.Fatal(err)
	}

	var active, gaps []time.Duration
	for _, st := range sched {
		if st.Active {
			active = append(active, st.Duration/ms)
		} else {
			gaps = append(gaps, st.Duration/ms)
		}
	}

	wantActive := []time.Duration{60, 60, 60, 180, 180, 180, 60, 60, 60}
	wantGaps := []time.Duration{60, 60, 180, 60, 60, 180, 60, 60}
	if !reflect.DeepEqual(active, wantActive) {
		t.Errorf("active = %v, want %v", active, wantActive)
	}
	if !reflect.DeepEqual(gaps, wantGaps) {
		t.Errorf("gaps = %v, want %v", gaps, wantGaps)
	}
	if len(sched) != 17 {
		t.Errorf("len = %d, want 17", len(sched))
	}
}

func TestBuildSchedule_WordGap(t *testing.T) {
	sched, err := BuildSchedule(Encode("E E"), 10*ms)
	if err != nil {
		t.Fatal(err)
	}
	want := Schedule{
		{Active: true, Duration: 10 * ms},
		{Active: false, Duration: 70 * ms},
		{Active: true, Duration: 10 * ms},
	}
	if !reflect.DeepEqual(sched, want) {
		t.Errorf("schedule = %v, want %v", sched, want)
	}
}

func TestBuildSchedule_Empty(t *testing.T) {
	sched, err := BuildSchedule(nil, 60*ms)
	if err != nil {
		t.Fatal(err)
	}
	if len(sched) != 0 {
		t.Errorf("len = %d, want 0", len(sched))
	}
}

func TestBuildSchedule_InvalidUnit(t *testing.T) {
	for _, unit := range []time.Duration{0, -time.Millisecond} {
		if _, err := BuildSchedule(Encode("SOS"), unit); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("BuildSchedule(unit=%v) error = %v, want ErrInvalidRate", unit, err)
		}
	}
}

func TestBuildSchedule_Deterministic(t *testing.T) {
	inputs := []string{"SOS", "HELLO WORLD 123", "q?r s!"}
	for _, input := range inputs {
		for _, wpm := range []int{1, 7, 20, 60} {
			a, err := ScheduleText(input, wpm)
			if err != nil {
				t.Fatal(err)
			}
			b, err := ScheduleText(input, wpm)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(a, b) {
				t.Errorf("ScheduleText(%q, %d) not deterministic", input, wpm)
			}
		}
	}
}

func TestSchedule_Totals(t *testing.T) {
	unit := 50 * ms
	for _, input := range []string{"SOS", "PARIS", "HELLO WORLD", "73 DE X"} {
		tokens := Encode(input)
		sched, err := BuildSchedule(tokens, unit)
		if err != nil {
			t.Fatal(err)
		}

		var activeUnits, gapUnits int
		for _, tok := range tokens {
			if tok.IsMark() {
				activeUnits += tok.Units()
			} else {
				gapUnits += tok.Units()
			}
		}

		if got := sched.ActiveTime(); got != time.Duration(activeUnits)*unit {
			t.Errorf("%q: ActiveTime = %v, want %v", input, got, time.Duration(activeUnits)*unit)
		}
		if got := sched.InactiveTime(); got != time.Duration(gapUnits)*unit {
			t.Errorf("%q: InactiveTime = %v, want %v", input, got, time.Duration(gapUnits)*unit)
		}
		if sched.Marks() != MarkCount(tokens) {
			t.Errorf("%q: Marks = %d, want %d", input, sched.Marks(), MarkCount(tokens))
		}
		for i, st := range sched {
			if st.Duration <= 0 {
				t.Errorf("%q: step %d has duration %v", input, i, st.Duration)
			}
		}
	}
}

func TestSchedule_PARIS(t *testing.T) {
	// PARIS plus the trailing word gap is the 50 unit reference word.
	sched, err := ScheduleText("PARIS", 12)
	if err != nil {
		t.Fatal(err)
	}
	unit, _ := UnitFor(12)
	if got := sched.Total() + 7*unit; got != 50*unit {
		t.Errorf("PARIS = %v, want %v", got, 50*unit)
	}
}
