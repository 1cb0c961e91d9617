package models

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vollnycoelho/yogaa/utils"
)

// memoryStorage keeps everything in process-local maps. State lives only as
// long as the process; it is the default backend for demos and tests.
type memoryStorage struct {
	mu            sync.RWMutex
	users         map[string]User
	sessions      map[string]Session
	bookings      map[string]Booking
	exercises     map[string]Exercise
	announcements map[string]Announcement
}

// NewMemoryStorage returns a memory-backed store pre-populated with the demo
// data set (admin/admin123, user/user123, sessions, exercises, announcements).
func NewMemoryStorage() Storage {
	s := &memoryStorage{
		users:         map[string]User{},
		sessions:      map[string]Session{},
		bookings:      map[string]Booking{},
		exercises:     map[string]Exercise{},
		announcements: map[string]Announcement{},
	}
	// Seeding only uses the public Storage surface, so it cannot fail here.
	_ = SeedDemoData(context.Background(), s)
	return s
}

/* -------------------- users -------------------- */

func (s *memoryStorage) GetUser(_ context.Context, id string) (User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok, nil
}

func (s *memoryStorage) GetUserByUsername(_ context.Context, username string) (User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, true, nil
		}
	}
	return User{}, false, nil
}

func (s *memoryStorage) CreateUser(_ context.Context, in NewUser) (User, error) {
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == in.Username || u.Email == in.Email {
			return User{}, ErrDuplicate
		}
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
	s.users[u.ID] = u
	return u, nil
}

func (s *memoryStorage) VerifyPassword(plain, hash string) bool {
	return utils.CheckPasswordHash(plain, hash)
}

/* -------------------- sessions -------------------- */

func (s *memoryStorage) ListSessions(_ context.Context) ([]Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Session, 0, len(s.sessions))
	for _, v := range s.sessions {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memoryStorage) GetSession(_ context.Context, id string) (Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.sessions[id]
	return v, ok, nil
}

func (s *memoryStorage) CreateSession(_ context.Context, in NewSession) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
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
	s.sessions[v.ID] = v
	return v, nil
}

func (s *memoryStorage) UpdateSession(_ context.Context, id string, in SessionUpdate) (Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.sessions[id]
	if !ok {
		return Session{}, false, nil
	}
	if in.Title != nil {
		v.Title = *in.Title
	}
	if in.Description != nil {
		v.Description = *in.Description
	}
	if in.Instructor != nil {
		v.Instructor = *in.Instructor
	}
	if in.Category != nil {
		v.Category = *in.Category
	}
	if in.Level != nil {
		v.Level = *in.Level
	}
	if in.Duration != nil {
		v.Duration = *in.Duration
	}
	if in.MaxParticipants != nil {
		v.MaxParticipants = *in.MaxParticipants
	}
	if in.CurrentParticipants != nil {
		v.CurrentParticipants = *in.CurrentParticipants
	}
	if in.Price != nil {
		v.Price = *in.Price
	}
	if in.Schedule != nil {
		v.Schedule = *in.Schedule
	}
	if in.ImageURL != nil {
		v.ImageURL = *in.ImageURL
	}
	s.sessions[id] = v
	return v, true, nil
}

func (s *memoryStorage) DeleteSession(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false, nil
	}
	delete(s.sessions, id)
	for bid, b := range s.bookings {
		if b.SessionID == id {
			delete(s.bookings, bid)
		}
	}
	return true, nil
}

func (s *memoryStorage) ReserveSeat(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.sessions[id]
	if !ok || v.CurrentParticipants >= v.MaxParticipants {
		return false, nil
	}
	v.CurrentParticipants++
	s.sessions[id] = v
	return true, nil
}

func (s *memoryStorage) ReleaseSeat(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.sessions[id]
	if !ok || v.CurrentParticipants == 0 {
		return nil
	}
	v.CurrentParticipants--
	s.sessions[id] = v
	return nil
}

/* -------------------- bookings -------------------- */

func (s *memoryStorage) ListBookings(_ context.Context) ([]Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b)
	}
	sortBookings(out)
	return out, nil
}

func (s *memoryStorage) ListBookingsByUser(_ context.Context, userID string) ([]Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Booking, 0)
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sortBookings(out)
	return out, nil
}

func sortBookings(bs []Booking) {
	sort.Slice(bs, func(i, j int) bool {
		if bs[i].CreatedAt.Equal(bs[j].CreatedAt) {
			return bs[i].ID < bs[j].ID
		}
		return bs[i].CreatedAt.Before(bs[j].CreatedAt)
	})
}

func (s *memoryStorage) GetBooking(_ context.Context, id string) (Booking, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	return b, ok, nil
}

func (s *memoryStorage) CreateBooking(_ context.Context, userID string, in NewBooking) (Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := Booking{
		ID:            uuid.NewString(),
		UserID:        userID,
		SessionID:     in.SessionID,
		SessionDate:   in.SessionDate,
		Status:        "confirmed",
		PaymentStatus: "completed",
		CreatedAt:     time.Now().UTC(),
	}
	s.bookings[b.ID] = b
	return b, nil
}

func (s *memoryStorage) DeleteBooking(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[id]; !ok {
		return false, nil
	}
	delete(s.bookings, id)
	return true, nil
}

/* -------------------- exercises -------------------- */

func (s *memoryStorage) ListExercises(_ context.Context) ([]Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Exercise, 0, len(s.exercises))
	for _, e := range s.exercises {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memoryStorage) GetExercise(_ context.Context, id string) (Exercise, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.exercises[id]
	return e, ok, nil
}

func (s *memoryStorage) CreateExercise(_ context.Context, in NewExercise) (Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
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
	s.exercises[e.ID] = e
	return e, nil
}

func (s *memoryStorage) DeleteExercise(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.exercises[id]; !ok {
		return false, nil
	}
	delete(s.exercises, id)
	return true, nil
}

/* -------------------- announcements -------------------- */

func (s *memoryStorage) ListAnnouncements(_ context.Context) ([]Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Announcement, 0, len(s.announcements))
	for _, a := range s.announcements {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memoryStorage) CreateAnnouncement(_ context.Context, authorID string, in NewAnnouncement) (Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := Announcement{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Content:   in.Content,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}
	s.announcements[a.ID] = a
	return a, nil
}

func (s *memoryStorage) DeleteAnnouncement(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.announcements[id]; !ok {
		return false, nil
	}
	delete(s.announcements, id)
	return true, nil
}
