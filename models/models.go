package models

import "time"

type User struct {
	ID        string    `json:"id" bson:"id"`
	Username  string    `json:"username" bson:"username"`
	Password  string    `json:"-" bson:"password"` // bcrypt hash, never serialized
	Email     string    `json:"email" bson:"email"`
	Role      string    `json:"role" bson:"role"` // "user" or "admin"
	FullName  string    `json:"fullName,omitempty" bson:"fullName,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Session is a scheduled, recurring bookable class offering.
type Session struct {
	ID                  string    `json:"id" bson:"id"`
	Title               string    `json:"title" bson:"title"`
	Description         string    `json:"description" bson:"description"`
	Instructor          string    `json:"instructor" bson:"instructor"`
	Category            string    `json:"category" bson:"category"`
	Level               string    `json:"level" bson:"level"`
	Duration            int       `json:"duration" bson:"duration"` // minutes
	MaxParticipants     int       `json:"maxParticipants" bson:"maxParticipants"`
	CurrentParticipants int       `json:"currentParticipants" bson:"currentParticipants"`
	Price               int       `json:"price" bson:"price"`
	Schedule            string    `json:"schedule" bson:"schedule"`
	ImageURL            string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	CreatedAt           time.Time `json:"createdAt" bson:"createdAt"`
}

// Booking reserves one seat in one occurrence of a session.
type Booking struct {
	ID            string    `json:"id" bson:"id"`
	UserID        string    `json:"userId" bson:"userId"`
	SessionID     string    `json:"sessionId" bson:"sessionId"`
	SessionDate   string    `json:"sessionDate" bson:"sessionDate"`
	Status        string    `json:"status" bson:"status"`
	PaymentStatus string    `json:"paymentStatus" bson:"paymentStatus"` // mock, always "completed"
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

type Exercise struct {
	ID           string    `json:"id" bson:"id"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description" bson:"description"`
	VideoURL     string    `json:"videoUrl" bson:"videoUrl"`
	Duration     int       `json:"duration" bson:"duration"` // seconds
	Level        string    `json:"level" bson:"level"`
	Category     string    `json:"category" bson:"category"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty" bson:"thumbnailUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

type Announcement struct {
	ID        string    `json:"id" bson:"id"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	AuthorID  string    `json:"authorId" bson:"authorId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

/* ------------- input payloads ------------- */

type NewUser struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
}

type NewSession struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description" binding:"required"`
	Instructor      string `json:"instructor" binding:"required"`
	Category        string `json:"category" binding:"required"`
	Level           string `json:"level" binding:"required"`
	Duration        int    `json:"duration" binding:"required,gt=0"`
	MaxParticipants int    `json:"maxParticipants" binding:"required,gt=0"`
	Price           int    `json:"price" binding:"required,gt=0"`
	Schedule        string `json:"schedule" binding:"required"`
	ImageURL        string `json:"imageUrl"`
}

// SessionUpdate carries a partial update; nil fields are left untouched.
type SessionUpdate struct {
	Title               *string `json:"title"`
	Description         *string `json:"description"`
	Instructor          *string `json:"instructor"`
	Category            *string `json:"category"`
	Level               *string `json:"level"`
	Duration            *int    `json:"duration"`
	MaxParticipants     *int    `json:"maxParticipants"`
	CurrentParticipants *int    `json:"currentParticipants"`
	Price               *int    `json:"price"`
	Schedule            *string `json:"schedule"`
	ImageURL            *string `json:"imageUrl"`
}

type NewBooking struct {
	SessionID   string `json:"sessionId" binding:"required"`
	SessionDate string `json:"sessionDate" binding:"required"`
}

type NewExercise struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	VideoURL     string `json:"videoUrl" binding:"required"`
	Duration     int    `json:"duration" binding:"required,gt=0"`
	Level        string `json:"level" binding:"required"`
	Category     string `json:"category" binding:"required"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

type NewAnnouncement struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}
