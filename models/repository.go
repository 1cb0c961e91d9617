package models

import (
	"context"
	"errors"
)

// ErrDuplicate reports a username or email that is already taken.
var ErrDuplicate = errors.New("username or email already in use")

// Lookup operations report absence with the bool result instead of an error;
// the error return is reserved for backend I/O failures. Create hashes the
// incoming password and fills in the generated id and timestamp. None of the
// stores perform authorization — that is the route layer's job.

type UserStore interface {
	GetUser(ctx context.Context, id string) (User, bool, error)
	GetUserByUsername(ctx context.Context, username string) (User, bool, error)
	CreateUser(ctx context.Context, in NewUser) (User, error)
	VerifyPassword(plain, hash string) bool
}

type SessionStore interface {
	ListSessions(ctx context.Context) ([]Session, error)
	GetSession(ctx context.Context, id string) (Session, bool, error)
	CreateSession(ctx context.Context, in NewSession) (Session, error)
	UpdateSession(ctx context.Context, id string, in SessionUpdate) (Session, bool, error)
	// DeleteSession also removes the session's bookings.
	DeleteSession(ctx context.Context, id string) (bool, error)

	// ReserveSeat increments currentParticipants only while it is below
	// maxParticipants, atomically with respect to other reservations.
	// It reports false when the session is full or absent.
	ReserveSeat(ctx context.Context, id string) (bool, error)
	// ReleaseSeat decrements currentParticipants with a floor of zero.
	// Releasing against a deleted session is a no-op.
	ReleaseSeat(ctx context.Context, id string) error
}

type BookingStore interface {
	ListBookings(ctx context.Context) ([]Booking, error)
	ListBookingsByUser(ctx context.Context, userID string) ([]Booking, error)
	GetBooking(ctx context.Context, id string) (Booking, bool, error)
	CreateBooking(ctx context.Context, userID string, in NewBooking) (Booking, error)
	DeleteBooking(ctx context.Context, id string) (bool, error)
}

type ExerciseStore interface {
	ListExercises(ctx context.Context) ([]Exercise, error)
	GetExercise(ctx context.Context, id string) (Exercise, bool, error)
	CreateExercise(ctx context.Context, in NewExercise) (Exercise, error)
	DeleteExercise(ctx context.Context, id string) (bool, error)
}

type AnnouncementStore interface {
	// ListAnnouncements returns newest first.
	ListAnnouncements(ctx context.Context) ([]Announcement, error)
	CreateAnnouncement(ctx context.Context, authorID string, in NewAnnouncement) (Announcement, error)
	DeleteAnnouncement(ctx context.Context, id string) (bool, error)
}

// Storage is the full persistence surface; the memory, Postgres and Mongo
// stores all satisfy it and are selected by configuration at startup.
type Storage interface {
	UserStore
	SessionStore
	BookingStore
	ExerciseStore
	AnnouncementStore
}
