package store

import (
	"testing"
)

func TestAssembleProgram(t *testing.T) {
	rows := []snapshotRow{
		{DayID: 10, DayNumber: 1, DayName: "Push", ExerciseID: 100, Position: 1, ExerciseName: "Bench", SetNumber: 1, Reps: 8, Weight: 80, RestSeconds: 120},
		{DayID: 10, DayNumber: 1, DayName: "Push", ExerciseID: 100, Position: 1, ExerciseName: "Bench", SetNumber: 2, Reps: 6, Weight: 85, RestSeconds: 120},
		{DayID: 10, DayNumber: 1, DayName: "Push", ExerciseID: 101, Position: 2, ExerciseName: "Press", Comment: "strict", SetNumber: 1, Reps: 10, Weight: 40, RestSeconds: 90},
		{DayID: 11, DayNumber: 2, DayName: "Pull", ExerciseID: 102, Position: 1, ExerciseName: "Row", SetNumber: 1, Reps: 12, Weight: 60, RestSeconds: 60},
	}

	prog := assembleProgram(7, "Strength", rows)

	if prog.ID != 7 || prog.Name != "Strength" {
		t.Fatalf("head = %d/%q", prog.ID, prog.Name)
	}
	if prog.NumDays() != 2 {
		t.Fatalf("days = %d, want 2", prog.NumDays())
	}

	day1, err := prog.Day(0)
	if err != nil {
		t.Fatal(err)
	}
	if day1.Name != "Push" || day1.NumExercises() != 2 {
		t.Fatalf("day1 = %q with %d exercises", day1.Name, day1.NumExercises())
	}

	bench, err := day1.Exercise(1)
	if err != nil {
		t.Fatal(err)
	}
	if bench.Name != "Bench" || bench.NumSets() != 2 {
		t.Fatalf("bench = %q with %d sets", bench.Name, bench.NumSets())
	}
	set2, err := bench.Set(2)
	if err != nil {
		t.Fatal(err)
	}
	if set2.Reps != 6 || set2.Weight != 85 {
		t.Errorf("bench set 2 = %+v", set2)
	}

	press, err := day1.Exercise(2)
	if err != nil {
		t.Fatal(err)
	}
	if press.Comment != "strict" {
		t.Errorf("press comment = %q", press.Comment)
	}

	day2, err := prog.Day(1)
	if err != nil {
		t.Fatal(err)
	}
	if day2.Name != "Pull" || day2.NumExercises() != 1 {
		t.Fatalf("day2 = %q with %d exercises", day2.Name, day2.NumExercises())
	}
}

func TestAssembleProgramEmpty(t *testing.T) {
	prog := assembleProgram(1, "Empty", nil)
	if prog.NumDays() != 0 {
		t.Errorf("days = %d, want 0", prog.NumDays())
	}
}
