package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/m3rciful/liftbot/core/logger"
	"log/slog"

	"github.com/m3rciful/liftbot/internal/program"
)

// Postgres implements Store on top of sqlx/pq.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres wraps an open connection pool.
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

// VerifyCredentials compares the stored bcrypt hash against the password.
func (p *Postgres) VerifyCredentials(ctx context.Context, username, password string) (int64, error) {
	var row struct {
		ID   int64  `db:"id"`
		Hash string `db:"password_hash"`
	}
	err := p.db.GetContext(ctx, &row,
		`SELECT id, password_hash FROM users WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("select user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(row.Hash), []byte(password)) != nil {
		logger.Store.Debug("password mismatch",
			slog.String("event", "auth.verify"),
			slog.String("status", "fail"),
			slog.Int64("user_id", row.ID),
		)
		return 0, ErrNotFound
	}
	return row.ID, nil
}

// UsernameExists reports whether the username is registered.
func (p *Postgres) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := p.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

// RegisterUser stores a new user with a bcrypt password hash.
func (p *Postgres) RegisterUser(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	res, err := p.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2)
		 ON CONFLICT (username) DO NOTHING`, username, string(hash))
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if n == 0 {
		return ErrExists
	}
	return nil
}

// ListPrograms returns the id/name pairs of the user's programs.
func (p *Postgres) ListPrograms(ctx context.Context, userID int64) ([]ProgramRef, error) {
	var refs []ProgramRef
	err := p.db.SelectContext(ctx, &refs,
		`SELECT id, name FROM programs WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	return refs, nil
}

// ProgramDetails renders the full breakdown of every program of the user.
func (p *Postgres) ProgramDetails(ctx context.Context, userID int64) (string, error) {
	refs, err := p.ListPrograms(ctx, userID)
	if err != nil {
		return "", err
	}
	var parts []string
	for _, ref := range refs {
		prog, err := p.LoadProgram(ctx, userID, ref.ID)
		if err != nil {
			return "", err
		}
		parts = append(parts, prog.String())
	}
	return strings.Join(parts, "\n"), nil
}

// ProgramBelongsToUser checks program ownership.
func (p *Postgres) ProgramBelongsToUser(ctx context.Context, userID, programID int64) (bool, error) {
	var owned bool
	err := p.db.GetContext(ctx, &owned,
		`SELECT EXISTS (SELECT 1 FROM programs WHERE id = $1 AND user_id = $2)`,
		programID, userID)
	if err != nil {
		return false, fmt.Errorf("check program: %w", err)
	}
	return owned, nil
}

// snapshotRow is one row of the flattened program tree query.
type snapshotRow struct {
	DayID        int64   `db:"day_id"`
	DayNumber    int     `db:"day_number"`
	DayName      string  `db:"day_name"`
	ExerciseID   int64   `db:"exercise_id"`
	Position     int     `db:"position"`
	ExerciseName string  `db:"exercise_name"`
	Comment      string  `db:"comment"`
	ExtraInfo    string  `db:"extra_info"`
	SetNumber    int     `db:"set_number"`
	Reps         int     `db:"reps"`
	Weight       float64 `db:"weight"`
	RestSeconds  int     `db:"rest_seconds"`
	SetComment   string  `db:"set_comment"`
}

const snapshotQuery = `
SELECT d.id AS day_id, d.day_number, d.name AS day_name,
       e.id AS exercise_id, e.position, e.name AS exercise_name,
       COALESCE(e.comment, '') AS comment, COALESCE(e.extra_info, '') AS extra_info,
       s.set_number, s.reps, s.weight, s.rest_seconds,
       COALESCE(s.comment, '') AS set_comment
FROM program_days d
JOIN exercises e ON e.day_id = d.id
JOIN exercise_sets s ON s.exercise_id = e.id
WHERE d.program_id = $1
ORDER BY d.day_number, e.position, s.set_number`

// LoadProgram materializes the full snapshot of an owned program.
func (p *Postgres) LoadProgram(ctx context.Context, userID, programID int64) (*program.Program, error) {
	var head struct {
		ID   int64  `db:"id"`
		Name string `db:"name"`
	}
	err := p.db.GetContext(ctx, &head,
		`SELECT id, name FROM programs WHERE id = $1 AND user_id = $2`,
		programID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select program: %w", err)
	}

	var rows []snapshotRow
	if err := p.db.SelectContext(ctx, &rows, snapshotQuery, programID); err != nil {
		return nil, fmt.Errorf("select program tree: %w", err)
	}

	return assembleProgram(head.ID, head.Name, rows), nil
}

// assembleProgram builds the snapshot tree from rows ordered by day,
// exercise position and set number.
func assembleProgram(id int64, name string, rows []snapshotRow) *program.Program {
	prog := &program.Program{ID: id, Name: name}
	for _, r := range rows {
		if n := len(prog.Days); n == 0 || prog.Days[n-1].ID != r.DayID {
			prog.Days = append(prog.Days, program.DayProgram{
				ID:        r.DayID,
				DayNumber: r.DayNumber,
				Name:      r.DayName,
			})
		}
		day := &prog.Days[len(prog.Days)-1]
		if n := len(day.Exercises); n == 0 || day.Exercises[n-1].ID != r.ExerciseID {
			day.Exercises = append(day.Exercises, program.Exercise{
				ID:        r.ExerciseID,
				Name:      r.ExerciseName,
				Comment:   r.Comment,
				ExtraInfo: r.ExtraInfo,
			})
		}
		ex := &day.Exercises[len(day.Exercises)-1]
		ex.Sets = append(ex.Sets, program.ExerciseSet{
			Number:      r.SetNumber,
			Reps:        r.Reps,
			Weight:      r.Weight,
			RestSeconds: r.RestSeconds,
			Comment:     r.SetComment,
		})
	}
	return prog
}

// CommitSetUpdate writes one field of one set inside a transaction.
// Day and exercise are resolved positionally, matching how the snapshot
// was assembled.
func (p *Postgres) CommitSetUpdate(ctx context.Context, userID, programID int64, dayIndex, exerciseNum, setNum int, field program.Field, value int) error {
	var column string
	switch field {
	case program.FieldReps:
		column = "reps"
	case program.FieldRest:
		column = "rest_seconds"
	case program.FieldWeight:
		column = "weight"
	default:
		return fmt.Errorf("commit set update: invalid field %q", field)
	}

	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var dayID int64
	err = tx.GetContext(ctx, &dayID, `
		SELECT d.id FROM program_days d
		JOIN programs p ON p.id = d.program_id
		WHERE d.program_id = $1 AND p.user_id = $2
		ORDER BY d.day_number LIMIT 1 OFFSET $3`,
		programID, userID, dayIndex)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("resolve day: %w", err)
	}

	var exerciseID int64
	err = tx.GetContext(ctx, &exerciseID, `
		SELECT id FROM exercises WHERE day_id = $1
		ORDER BY position LIMIT 1 OFFSET $2`,
		dayID, exerciseNum-1)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("resolve exercise: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE exercise_sets SET %s = $1 WHERE exercise_id = $2 AND set_number = $3`, column),
		value, exerciseID, setNum)
	if err != nil {
		return fmt.Errorf("update set: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update set: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	logger.Store.Info("set updated",
		slog.String("event", "set.update"),
		slog.Int64("user_id", userID),
		slog.Int64("program_id", programID),
		slog.Int("day", dayIndex),
		slog.Int("exercise", exerciseNum),
		slog.Int("set", setNum),
		slog.String("field", field.String()),
		slog.Int("value", value),
	)
	return nil
}
