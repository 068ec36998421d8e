package program

// Field selects which value of a set an update targets.
type Field int

const (
	// FieldNone marks an update whose target has not been chosen yet.
	FieldNone Field = iota
	// FieldReps targets the repetition count.
	FieldReps
	// FieldRest targets the rest seconds.
	FieldRest
	// FieldWeight targets the weight.
	FieldWeight
)

func (f Field) String() string {
	switch f {
	case FieldReps:
		return "reps"
	case FieldRest:
		return "rest"
	case FieldWeight:
		return "weight"
	}
	return "none"
}

// FieldFromSelector maps the guided-dialog selector (1=reps, 2=rest,
// 3=weight) to a Field. Zero and out-of-range selectors report false.
func FieldFromSelector(n int) (Field, bool) {
	switch n {
	case 1:
		return FieldReps, true
	case 2:
		return FieldRest, true
	case 3:
		return FieldWeight, true
	}
	return FieldNone, false
}

// PendingUpdate is the partially filled request to change one value of one
// set, built across several guided-dialog turns. The zero values of
// Exercise, Set and Field mean "not chosen yet"; Value stays nil until the
// final step succeeds.
type PendingUpdate struct {
	ChatID   int64
	Exercise int
	Set      int
	Field    Field
	Value    *int
}

// SetValue records the validated new value.
func (u *PendingUpdate) SetValue(v int) {
	u.Value = &v
}

// Complete reports whether every part of the update has been supplied.
// Commit must be refused while this is false.
func (u *PendingUpdate) Complete() bool {
	return u != nil && u.Exercise >= 1 && u.Set >= 1 && u.Field != FieldNone && u.Value != nil
}
