package schema

import (
	"testing"
	"time"
)

func TestSprintValidate(t *testing.T) {
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	s := Sprint{ID: 1, DateStart: start, DateEnd: start.AddDate(0, 0, 4)}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	s.DateEnd = start
	if err := s.Validate(); err != nil {
		t.Fatalf("single-day sprint should be valid: %v", err)
	}
	s.DateEnd = start.AddDate(0, 0, -1)
	if err := s.Validate(); err == nil {
		t.Fatalf("end before start should fail")
	}
	if err := (Sprint{ID: 2}).Validate(); err == nil {
		t.Fatalf("missing dates should fail")
	}
}

func TestStoryStarted(t *testing.T) {
	var zero time.Time
	now := time.Now()
	if (Story{}).Started() {
		t.Fatalf("nil time_start should not be started")
	}
	if (Story{TimeStart: &zero}).Started() {
		t.Fatalf("zero time_start should not be started")
	}
	if !(Story{TimeStart: &now}).Started() {
		t.Fatalf("story with time_start should be started")
	}
}

func TestTaskDoneAt(t *testing.T) {
	end := time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC)
	if _, ok := (Task{IsDone: true}).DoneAt(); ok {
		t.Fatalf("done task without time_end should have no done date")
	}
	if _, ok := (Task{IsDone: false, TimeEnd: &end}).DoneAt(); ok {
		t.Fatalf("open task should have no done date")
	}
	got, ok := (Task{IsDone: true, TimeEnd: &end}).DoneAt()
	if !ok || !got.Equal(end) {
		t.Fatalf("DoneAt=%v ok=%v, want %v", got, ok, end)
	}
}

func TestPhaseIsFirst(t *testing.T) {
	if !(Phase{Order: 0}).IsFirst() {
		t.Fatalf("order 0 should be first phase")
	}
	if (Phase{Order: 3}).IsFirst() {
		t.Fatalf("order 3 should not be first phase")
	}
}
