package program

import "fmt"

// ExerciseSet is a single set of an exercise. Sets are mutated only through
// the update commit path; everywhere else the snapshot is read-only.
type ExerciseSet struct {
	Number      int
	Reps        int
	Weight      float64
	RestSeconds int
	Comment     string
}

// Exercise is a named exercise with its ordered sets.
// Sets keep the sequence numbers recorded at load time and are addressed
// 1-based in every user-facing message.
type Exercise struct {
	ID        int64
	Name      string
	Comment   string
	ExtraInfo string
	Sets      []ExerciseSet
}

// NumSets returns the number of sets of the exercise.
func (e *Exercise) NumSets() int {
	return len(e.Sets)
}

// Set returns the 1-based set or an error when out of range.
func (e *Exercise) Set(num int) (*ExerciseSet, error) {
	if num < 1 || num > len(e.Sets) {
		return nil, fmt.Errorf("set number %d out of range [1, %d]", num, len(e.Sets))
	}
	return &e.Sets[num-1], nil
}

// DayProgram is one training day of a program. DayNumber is 1-based and
// unique within the program; the exercise order is the training order.
type DayProgram struct {
	ID        int64
	DayNumber int
	Name      string
	Exercises []Exercise
}

// NumExercises returns the number of exercises of the day.
func (d *DayProgram) NumExercises() int {
	return len(d.Exercises)
}

// Exercise returns the 1-based exercise or an error when out of range.
func (d *DayProgram) Exercise(num int) (*Exercise, error) {
	if num < 1 || num > len(d.Exercises) {
		return nil, fmt.Errorf("exercise number %d out of range [1, %d]", num, len(d.Exercises))
	}
	return &d.Exercises[num-1], nil
}

// Program is a fully materialized training program snapshot, loaded
// wholesale when the user selects it and replaced (never patched) after a
// committed edit.
type Program struct {
	ID   int64
	Name string
	Days []DayProgram
}

// NumDays returns the number of days of the program.
func (p *Program) NumDays() int {
	return len(p.Days)
}

// Day returns the 0-based day or an error when out of range.
func (p *Program) Day(index int) (*DayProgram, error) {
	if index < 0 || index >= len(p.Days) {
		return nil, fmt.Errorf("day index %d out of range [0, %d)", index, len(p.Days))
	}
	return &p.Days[index], nil
}
