package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/vollnycoelho/yogaa/utils"
)

type postgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage wraps an open Postgres handle. The schema is created by
// db.InitSchema before the store is used.
func NewPostgresStorage(db *sql.DB) Storage {
	return &postgresStorage{db: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

type rowScanner interface {
	Scan(dest ...any) error
}

/* -------------------- users -------------------- */

const userColumns = `id, username, password, email, role, COALESCE(full_name, ''), created_at`

func scanUser(row rowScanner) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.Role, &u.FullName, &u.CreatedAt)
	return u, err
}

func (s *postgresStorage) GetUser(ctx context.Context, id string) (User, bool, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, fmt.Errorf("get user: %w", err)
	}
	return u, true, nil
}

func (s *postgresStorage) GetUserByUsername(ctx context.Context, username string) (User, bool, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, fmt.Errorf("get user by username: %w", err)
	}
	return u, true, nil
}

func (s *postgresStorage) CreateUser(ctx context.Context, in NewUser) (User, error) {
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}
	role := in.Role
	if role == "" {
		role = "user"
	}
	u := User{
		ID:        uuid.NewString(),
		Username:  in.Username,
		Password:  hash,
		Email:     in.Email,
		Role:      role,
		FullName:  in.FullName,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password, email, role, full_name, created_at)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)`,
		u.ID, u.Username, u.Password, u.Email, u.Role, u.FullName, u.CreatedAt)
	if isUniqueViolation(err) {
		return User{}, ErrDuplicate
	}
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *postgresStorage) VerifyPassword(plain, hash string) bool {
	return utils.CheckPasswordHash(plain, hash)
}

/* -------------------- sessions -------------------- */

const sessionColumns = `id, title, description, instructor, category, level, duration,
	max_participants, current_participants, price, schedule, COALESCE(image_url, ''), created_at`

func scanSession(row rowScanner) (Session, error) {
	var v Session
	err := row.Scan(&v.ID, &v.Title, &v.Description, &v.Instructor, &v.Category, &v.Level,
		&v.Duration, &v.MaxParticipants, &v.CurrentParticipants, &v.Price, &v.Schedule,
		&v.ImageURL, &v.CreatedAt)
	return v, err
}

func (s *postgresStorage) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	out := make([]Session, 0)
	for rows.Next() {
		v, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *postgresStorage) GetSession(ctx context.Context, id string) (Session, bool, error) {
	v, err := scanSession(s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("get session: %w", err)
	}
	return v, true, nil
}

func (s *postgresStorage) CreateSession(ctx context.Context, in NewSession) (Session, error) {
	v := Session{
		ID:              uuid.NewString(),
		Title:           in.Title,
		Description:     in.Description,
		Instructor:      in.Instructor,
		Category:        in.Category,
		Level:           in.Level,
		Duration:        in.Duration,
		MaxParticipants: in.MaxParticipants,
		Price:           in.Price,
		Schedule:        in.Schedule,
		ImageURL:        in.ImageURL,
		CreatedAt:       time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, title, description, instructor, category, level, duration,
			max_participants, current_participants, price, schedule, image_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9, $10, NULLIF($11, ''), $12)`,
		v.ID, v.Title, v.Description, v.Instructor, v.Category, v.Level, v.Duration,
		v.MaxParticipants, v.Price, v.Schedule, v.ImageURL, v.CreatedAt)
	if err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}
	return v, nil
}

func (s *postgresStorage) UpdateSession(ctx context.Context, id string, in SessionUpdate) (Session, bool, error) {
	b := psql.Update("sessions").Where(sq.Eq{"id": id})
	changed := false
	set := func(col string, v any) {
		b = b.Set(col, v)
		changed = true
	}
	if in.Title != nil {
		set("title", *in.Title)
	}
	if in.Description != nil {
		set("description", *in.Description)
	}
	if in.Instructor != nil {
		set("instructor", *in.Instructor)
	}
	if in.Category != nil {
		set("category", *in.Category)
	}
	if in.Level != nil {
		set("level", *in.Level)
	}
	if in.Duration != nil {
		set("duration", *in.Duration)
	}
	if in.MaxParticipants != nil {
		set("max_participants", *in.MaxParticipants)
	}
	if in.CurrentParticipants != nil {
		set("current_participants", *in.CurrentParticipants)
	}
	if in.Price != nil {
		set("price", *in.Price)
	}
	if in.Schedule != nil {
		set("schedule", *in.Schedule)
	}
	if in.ImageURL != nil {
		set("image_url", sq.Expr("NULLIF(?, '')", *in.ImageURL))
	}
	if !changed {
		return s.GetSession(ctx, id)
	}

	query, args, err := b.Suffix("RETURNING " + sessionColumns).ToSql()
	if err != nil {
		return Session{}, false, fmt.Errorf("update session: %w", err)
	}
	v, err := scanSession(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("update session: %w", err)
	}
	return v, true, nil
}

func (s *postgresStorage) DeleteSession(ctx context.Context, id string) (bool, error) {
	// bookings go with it via ON DELETE CASCADE
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *postgresStorage) ReserveSeat(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET current_participants = current_participants + 1
		 WHERE id = $1 AND current_participants < max_participants`, id)
	if err != nil {
		return false, fmt.Errorf("reserve seat: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *postgresStorage) ReleaseSeat(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET current_participants = current_participants - 1
		 WHERE id = $1 AND current_participants > 0`, id)
	if err != nil {
		return fmt.Errorf("release seat: %w", err)
	}
	return nil
}

/* -------------------- bookings -------------------- */

const bookingColumns = `id, user_id, session_id, session_date, status, payment_status, created_at`

func scanBooking(row rowScanner) (Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.UserID, &b.SessionID, &b.SessionDate, &b.Status, &b.PaymentStatus, &b.CreatedAt)
	return b, err
}

func (s *postgresStorage) listBookings(ctx context.Context, query string, args ...any) ([]Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	out := make([]Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("list bookings: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *postgresStorage) ListBookings(ctx context.Context) ([]Booking, error) {
	return s.listBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings ORDER BY created_at, id`)
}

func (s *postgresStorage) ListBookingsByUser(ctx context.Context, userID string) ([]Booking, error) {
	return s.listBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY created_at, id`, userID)
}

func (s *postgresStorage) GetBooking(ctx context.Context, id string) (Booking, bool, error) {
	b, err := scanBooking(s.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Booking{}, false, nil
	}
	if err != nil {
		return Booking{}, false, fmt.Errorf("get booking: %w", err)
	}
	return b, true, nil
}

func (s *postgresStorage) CreateBooking(ctx context.Context, userID string, in NewBooking) (Booking, error) {
	b := Booking{
		ID:            uuid.NewString(),
		UserID:        userID,
		SessionID:     in.SessionID,
		SessionDate:   in.SessionDate,
		Status:        "confirmed",
		PaymentStatus: "completed",
		CreatedAt:     time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bookings (id, user_id, session_id, session_date, status, payment_status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.UserID, b.SessionID, b.SessionDate, b.Status, b.PaymentStatus, b.CreatedAt)
	if err != nil {
		return Booking{}, fmt.Errorf("create booking: %w", err)
	}
	return b, nil
}

func (s *postgresStorage) DeleteBooking(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete booking: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

/* -------------------- exercises -------------------- */

const exerciseColumns = `id, title, description, video_url, duration, level, category,
	COALESCE(thumbnail_url, ''), created_at`

func scanExercise(row rowScanner) (Exercise, error) {
	var e Exercise
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.VideoURL, &e.Duration, &e.Level,
		&e.Category, &e.ThumbnailURL, &e.CreatedAt)
	return e, err
}

func (s *postgresStorage) ListExercises(ctx context.Context) ([]Exercise, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+exerciseColumns+` FROM exercises ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	out := make([]Exercise, 0)
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("list exercises: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *postgresStorage) GetExercise(ctx context.Context, id string) (Exercise, bool, error) {
	e, err := scanExercise(s.db.QueryRowContext(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Exercise{}, false, nil
	}
	if err != nil {
		return Exercise{}, false, fmt.Errorf("get exercise: %w", err)
	}
	return e, true, nil
}

func (s *postgresStorage) CreateExercise(ctx context.Context, in NewExercise) (Exercise, error) {
	e := Exercise{
		ID:           uuid.NewString(),
		Title:        in.Title,
		Description:  in.Description,
		VideoURL:     in.VideoURL,
		Duration:     in.Duration,
		Level:        in.Level,
		Category:     in.Category,
		ThumbnailURL: in.ThumbnailURL,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exercises (id, title, description, video_url, duration, level, category, thumbnail_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)`,
		e.ID, e.Title, e.Description, e.VideoURL, e.Duration, e.Level, e.Category, e.ThumbnailURL, e.CreatedAt)
	if err != nil {
		return Exercise{}, fmt.Errorf("create exercise: %w", err)
	}
	return e, nil
}

func (s *postgresStorage) DeleteExercise(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete exercise: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

/* -------------------- announcements -------------------- */

func (s *postgresStorage) ListAnnouncements(ctx context.Context) ([]Announcement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, author_id, created_at FROM announcements
		 ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	out := make([]Announcement, 0)
	for rows.Next() {
		var a Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("list announcements: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *postgresStorage) CreateAnnouncement(ctx context.Context, authorID string, in NewAnnouncement) (Announcement, error) {
	a := Announcement{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Content:   in.Content,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO announcements (id, title, content, author_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.Title, a.Content, a.AuthorID, a.CreatedAt)
	if err != nil {
		return Announcement{}, fmt.Errorf("create announcement: %w", err)
	}
	return a, nil
}

func (s *postgresStorage) DeleteAnnouncement(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete announcement: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
