// Package store persists StuNotes documents. The Mongo implementation is
// used in production; Memory backs the tests and DB-less local runs.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/unish6123/StuNotes/models"
)

var (
	// ErrNotFound means no document matched the lookup key.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate means a unique key (email) is already taken.
	ErrDuplicate = errors.New("already exists")
)

// UserStore holds verified accounts.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	// SetResetOTP stores a password-reset code and its expiry on the user,
	// replacing any previous one.
	SetResetOTP(ctx context.Context, email, otp string, exp time.Time) error
	// UpdatePassword sets a new password hash and clears any reset OTP state.
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// PendingSignupStore holds provisional accounts awaiting OTP verification.
type PendingSignupStore interface {
	// UpsertPending replaces any pending signup for the same email, so a
	// repeated signup attempt supersedes the earlier OTP.
	UpsertPending(ctx context.Context, pending *models.PendingSignup) error
	GetPending(ctx context.Context, email string) (*models.PendingSignup, error)
	// PromotePending turns a pending signup into a User and removes the
	// pending document. It must not leave both behind: if the pending
	// delete fails the created user is rolled back.
	PromotePending(ctx context.Context, pending *models.PendingSignup) (*models.User, error)
}

// NoteStore holds study notes, both manual and transcribed.
type NoteStore interface {
	CreateNote(ctx context.Context, note *models.Note) error
	// ListNotes returns all of a user's notes, newest first. noteType
	// filters by kind; empty means both kinds.
	ListNotes(ctx context.Context, userID primitive.ObjectID, noteType string) ([]models.Note, error)
	GetNoteByTitle(ctx context.Context, userID primitive.ObjectID, title string) (*models.Note, error)
	UpdateNote(ctx context.Context, userID, noteID primitive.ObjectID, title, content string) (*models.Note, error)
	DeleteNoteByTitle(ctx context.Context, userID primitive.ObjectID, title string) error
}

// QuizStore holds quiz attempt scores.
type QuizStore interface {
	CreateScore(ctx context.Context, score *models.QuizScore) error
	// ListScores returns a user's attempts for one title, oldest first,
	// for charting progress over time.
	ListScores(ctx context.Context, userID primitive.ObjectID, title string) ([]models.QuizScore, error)
}

// Store is the full persistence surface the controllers depend on.
type Store interface {
	UserStore
	PendingSignupStore
	NoteStore
	QuizStore
}
