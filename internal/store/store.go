// Package store is the system of record behind the conversation engine:
// credentials, program ownership and the program tree live here.
package store

import (
	"context"
	"errors"

	"github.com/m3rciful/liftbot/internal/program"
)

var (
	// ErrNotFound reports a missing row or a failed credential check.
	ErrNotFound = errors.New("store: not found")
	// ErrExists reports a registration conflict on username.
	ErrExists = errors.New("store: already exists")
)

// ProgramRef is a program listing entry.
type ProgramRef struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Store is the persistence interface the dialog engine consumes.
type Store interface {
	// VerifyCredentials returns the user id when username and password
	// match, ErrNotFound when either does not.
	VerifyCredentials(ctx context.Context, username, password string) (int64, error)
	// UsernameExists reports whether the username is registered.
	UsernameExists(ctx context.Context, username string) (bool, error)
	// RegisterUser creates a user with a hashed password; ErrExists when
	// the username is taken.
	RegisterUser(ctx context.Context, username, password string) error

	// ListPrograms returns the id and name of every program of the user.
	ListPrograms(ctx context.Context, userID int64) ([]ProgramRef, error)
	// ProgramDetails renders the full breakdown of all the user's programs.
	ProgramDetails(ctx context.Context, userID int64) (string, error)
	// ProgramBelongsToUser checks program ownership.
	ProgramBelongsToUser(ctx context.Context, userID, programID int64) (bool, error)
	// LoadProgram materializes the full program snapshot.
	LoadProgram(ctx context.Context, userID, programID int64) (*program.Program, error)

	// CommitSetUpdate writes one field of one set, addressed by the
	// 0-based day index and 1-based exercise/set numbers of the snapshot.
	CommitSetUpdate(ctx context.Context, userID, programID int64, dayIndex, exerciseNum, setNum int, field program.Field, value int) error
}
