package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vollnycoelho/yogaa/utils"
)

type mongoStorage struct {
	users         *mongo.Collection
	sessions      *mongo.Collection
	bookings      *mongo.Collection
	exercises     *mongo.Collection
	announcements *mongo.Collection
}

// NewMongoStorage wraps a connected database and ensures the unique indexes
// the relational schema declares (username, email).
func NewMongoStorage(ctx context.Context, db *mongo.Database) (Storage, error) {
	s := &mongoStorage{
		users:         db.Collection("users"),
		sessions:      db.Collection("sessions"),
		bookings:      db.Collection("bookings"),
		exercises:     db.Collection("exercises"),
		announcements: db.Collection("announcements"),
	}
	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return nil, fmt.Errorf("mongo indexes: %w", err)
	}
	return s, nil
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.M) (T, bool, error) {
	var out T
	err := col.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return out, false, nil
	}
	if err != nil {
		return out, false, err
	}
	return out, true, nil
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

/* -------------------- users -------------------- */

func (s *mongoStorage) GetUser(ctx context.Context, id string) (User, bool, error) {
	return findOne[User](ctx, s.users, bson.M{"id": id})
}

func (s *mongoStorage) GetUserByUsername(ctx context.Context, username string) (User, bool, error) {
	return findOne[User](ctx, s.users, bson.M{"username": username})
}

func (s *mongoStorage) CreateUser(ctx context.Context, in NewUser) (User, error) {
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
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return User{}, ErrDuplicate
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *mongoStorage) VerifyPassword(plain, hash string) bool {
	return utils.CheckPasswordHash(plain, hash)
}

/* -------------------- sessions -------------------- */

func (s *mongoStorage) ListSessions(ctx context.Context) ([]Session, error) {
	return findAll[Session](ctx, s.sessions, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "id", Value: 1}}))
}

func (s *mongoStorage) GetSession(ctx context.Context, id string) (Session, bool, error) {
	return findOne[Session](ctx, s.sessions, bson.M{"id": id})
}

func (s *mongoStorage) CreateSession(ctx context.Context, in NewSession) (Session, error) {
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
	if _, err := s.sessions.InsertOne(ctx, v); err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}
	return v, nil
}

func (s *mongoStorage) UpdateSession(ctx context.Context, id string, in SessionUpdate) (Session, bool, error) {
	set := bson.M{}
	put := func(k string, v any) { set[k] = v }
	if in.Title != nil {
		put("title", *in.Title)
	}
	if in.Description != nil {
		put("description", *in.Description)
	}
	if in.Instructor != nil {
		put("instructor", *in.Instructor)
	}
	if in.Category != nil {
		put("category", *in.Category)
	}
	if in.Level != nil {
		put("level", *in.Level)
	}
	if in.Duration != nil {
		put("duration", *in.Duration)
	}
	if in.MaxParticipants != nil {
		put("maxParticipants", *in.MaxParticipants)
	}
	if in.CurrentParticipants != nil {
		put("currentParticipants", *in.CurrentParticipants)
	}
	if in.Price != nil {
		put("price", *in.Price)
	}
	if in.Schedule != nil {
		put("schedule", *in.Schedule)
	}
	if in.ImageURL != nil {
		put("imageUrl", *in.ImageURL)
	}
	if len(set) == 0 {
		return s.GetSession(ctx, id)
	}

	var v Session
	err := s.sessions.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("update session: %w", err)
	}
	return v, true, nil
}

func (s *mongoStorage) DeleteSession(ctx context.Context, id string) (bool, error) {
	res, err := s.sessions.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return false, nil
	}
	if _, err := s.bookings.DeleteMany(ctx, bson.M{"sessionId": id}); err != nil {
		return true, fmt.Errorf("delete session bookings: %w", err)
	}
	return true, nil
}

// Seat accounting uses pipeline updates so the capacity check and the
// increment happen in one server-side operation; ModifiedCount distinguishes
// a taken seat from a full or missing session.
func (s *mongoStorage) ReserveSeat(ctx context.Context, id string) (bool, error) {
	pipeline := bson.A{bson.M{"$set": bson.M{
		"currentParticipants": bson.M{"$cond": bson.A{
			bson.M{"$lt": bson.A{"$currentParticipants", "$maxParticipants"}},
			bson.M{"$add": bson.A{"$currentParticipants", 1}},
			"$currentParticipants",
		}},
	}}}
	res, err := s.sessions.UpdateOne(ctx, bson.M{"id": id}, pipeline)
	if err != nil {
		return false, fmt.Errorf("reserve seat: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

func (s *mongoStorage) ReleaseSeat(ctx context.Context, id string) error {
	pipeline := bson.A{bson.M{"$set": bson.M{
		"currentParticipants": bson.M{"$cond": bson.A{
			bson.M{"$gt": bson.A{"$currentParticipants", 0}},
			bson.M{"$subtract": bson.A{"$currentParticipants", 1}},
			"$currentParticipants",
		}},
	}}}
	if _, err := s.sessions.UpdateOne(ctx, bson.M{"id": id}, pipeline); err != nil {
		return fmt.Errorf("release seat: %w", err)
	}
	return nil
}

/* -------------------- bookings -------------------- */

var bookingSort = options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "id", Value: 1}})

func (s *mongoStorage) ListBookings(ctx context.Context) ([]Booking, error) {
	return findAll[Booking](ctx, s.bookings, bson.M{}, bookingSort)
}

func (s *mongoStorage) ListBookingsByUser(ctx context.Context, userID string) ([]Booking, error) {
	return findAll[Booking](ctx, s.bookings, bson.M{"userId": userID}, bookingSort)
}

func (s *mongoStorage) GetBooking(ctx context.Context, id string) (Booking, bool, error) {
	return findOne[Booking](ctx, s.bookings, bson.M{"id": id})
}

func (s *mongoStorage) CreateBooking(ctx context.Context, userID string, in NewBooking) (Booking, error) {
	b := Booking{
		ID:            uuid.NewString(),
		UserID:        userID,
		SessionID:     in.SessionID,
		SessionDate:   in.SessionDate,
		Status:        "confirmed",
		PaymentStatus: "completed",
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := s.bookings.InsertOne(ctx, b); err != nil {
		return Booking{}, fmt.Errorf("create booking: %w", err)
	}
	return b, nil
}

func (s *mongoStorage) DeleteBooking(ctx context.Context, id string) (bool, error) {
	res, err := s.bookings.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("delete booking: %w", err)
	}
	return res.DeletedCount > 0, nil
}

/* -------------------- exercises -------------------- */

func (s *mongoStorage) ListExercises(ctx context.Context) ([]Exercise, error) {
	return findAll[Exercise](ctx, s.exercises, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "id", Value: 1}}))
}

func (s *mongoStorage) GetExercise(ctx context.Context, id string) (Exercise, bool, error) {
	return findOne[Exercise](ctx, s.exercises, bson.M{"id": id})
}

func (s *mongoStorage) CreateExercise(ctx context.Context, in NewExercise) (Exercise, error) {
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
	if _, err := s.exercises.InsertOne(ctx, e); err != nil {
		return Exercise{}, fmt.Errorf("create exercise: %w", err)
	}
	return e, nil
}

func (s *mongoStorage) DeleteExercise(ctx context.Context, id string) (bool, error) {
	res, err := s.exercises.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("delete exercise: %w", err)
	}
	return res.DeletedCount > 0, nil
}

/* -------------------- announcements -------------------- */

func (s *mongoStorage) ListAnnouncements(ctx context.Context) ([]Announcement, error) {
	return findAll[Announcement](ctx, s.announcements, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: 1}}))
}

func (s *mongoStorage) CreateAnnouncement(ctx context.Context, authorID string, in NewAnnouncement) (Announcement, error) {
	a := Announcement{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Content:   in.Content,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.announcements.InsertOne(ctx, a); err != nil {
		return Announcement{}, fmt.Errorf("create announcement: %w", err)
	}
	return a, nil
}

func (s *mongoStorage) DeleteAnnouncement(ctx context.Context, id string) (bool, error) {
	res, err := s.announcements.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("delete announcement: %w", err)
	}
	return res.DeletedCount > 0, nil
}
