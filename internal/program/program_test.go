package program

import (
	"strings"
	"testing"
)

func TestFormatWeight(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{80, "80"},
		{82.5, "82.5"},
		{0, "0"},
		{102.25, "102.25"},
	}
	for _, tc := range cases {
		if got := FormatWeight(tc.in); got != tc.want {
			t.Errorf("FormatWeight(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSetString(t *testing.T) {
	s := ExerciseSet{Number: 1, Reps: 8, Weight: 82.5, RestSeconds: 90}
	want := "Reps:  8   | Weight: 82.5 kg | Rest: 90 s"
	if got := s.String(); got != want {
		t.Errorf("set line = %q, want %q", got, want)
	}
}

func TestProgramString(t *testing.T) {
	p := &Program{
		ID:   1,
		Name: "Strength",
		Days: []DayProgram{
			{
				ID:        10,
				DayNumber: 1,
				Name:      "Push",
				Exercises: []Exercise{
					{
						ID:   100,
						Name: "Bench Press",
						Sets: []ExerciseSet{
							{Number: 1, Reps: 8, Weight: 80, RestSeconds: 120},
							{Number: 2, Reps: 6, Weight: 85, RestSeconds: 120},
						},
					},
				},
			},
		},
	}

	out := p.String()
	for _, want := range []string{
		"🏋️ Program: Strength 🏋️",
		"=== Day 1: Push ===",
		"Bench Press:",
		"  Set 1: ",
		"  Set 2: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("program rendering missing %q:\n%s", want, out)
		}
	}
}

func TestAccessorsRange(t *testing.T) {
	ex := Exercise{Sets: []ExerciseSet{{Number: 1}, {Number: 2}}}
	day := DayProgram{Exercises: []Exercise{ex}}
	p := Program{Days: []DayProgram{day}}

	if _, err := p.Day(0); err != nil {
		t.Errorf("Day(0): %v", err)
	}
	if _, err := p.Day(1); err == nil {
		t.Error("Day(1) should be out of range")
	}
	if _, err := p.Day(-1); err == nil {
		t.Error("Day(-1) should be out of range")
	}

	if _, err := day.Exercise(1); err != nil {
		t.Errorf("Exercise(1): %v", err)
	}
	if _, err := day.Exercise(0); err == nil {
		t.Error("Exercise(0) should be out of range")
	}
	if _, err := day.Exercise(2); err == nil {
		t.Error("Exercise(2) should be out of range")
	}

	if _, err := ex.Set(2); err != nil {
		t.Errorf("Set(2): %v", err)
	}
	if _, err := ex.Set(3); err == nil {
		t.Error("Set(3) should be out of range")
	}
}

func TestPendingUpdateComplete(t *testing.T) {
	u := &PendingUpdate{ChatID: 1}
	if u.Complete() {
		t.Error("empty update must not be complete")
	}
	u.Exercise = 1
	u.Set = 2
	if u.Complete() {
		t.Error("update without field and value must not be complete")
	}
	u.Field = FieldWeight
	if u.Complete() {
		t.Error("update without value must not be complete")
	}
	u.SetValue(85)
	if !u.Complete() {
		t.Error("fully populated update must be complete")
	}

	var nilUpd *PendingUpdate
	if nilUpd.Complete() {
		t.Error("nil update must not be complete")
	}
}

func TestFieldFromSelector(t *testing.T) {
	cases := []struct {
		in   int
		want Field
		ok   bool
	}{
		{1, FieldReps, true},
		{2, FieldRest, true},
		{3, FieldWeight, true},
		{0, FieldNone, false},
		{4, FieldNone, false},
	}
	for _, tc := range cases {
		got, ok := FieldFromSelector(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("FieldFromSelector(%d) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
