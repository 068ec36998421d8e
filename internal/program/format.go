package program

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatWeight renders a weight without a trailing zero fraction (80, 82.5).
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// String renders the set as a single aligned line.
func (s ExerciseSet) String() string {
	return fmt.Sprintf("%-6s %-3d | %-7s %-5skg | %-5s %-3ds",
		"Reps:", s.Reps,
		"Weight:", FormatWeight(s.Weight),
		"Rest:", s.RestSeconds,
	)
}

// String renders the exercise with all its sets.
func (e *Exercise) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s:\n", e.Name)
	for i, s := range e.Sets {
		fmt.Fprintf(&b, "  Set %d: %s\n", i+1, s)
	}
	return b.String()
}

// String renders the day header followed by every exercise.
func (d *DayProgram) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n=== Day %d: %s ===\n", d.DayNumber, d.Name)
	for i := range d.Exercises {
		b.WriteString(d.Exercises[i].String())
	}
	return b.String()
}

// String renders the whole program breakdown.
func (p *Program) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏋️ Program: %s 🏋️\n", p.Name)
	for i := range p.Days {
		b.WriteString(p.Days[i].String())
	}
	return b.String()
}
