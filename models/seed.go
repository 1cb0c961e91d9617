package models

import (
	"context"
	"fmt"
)

// SeedDemoData loads the demo data set through the Storage interface so it
// works against any backend. It is idempotent: when the admin user already
// exists the whole seed is skipped.
func SeedDemoData(ctx context.Context, s Storage) error {
	if _, ok, err := s.GetUserByUsername(ctx, "admin"); err != nil {
		return fmt.Errorf("seed: check admin: %w", err)
	} else if ok {
		return nil
	}

	admin, err := s.CreateUser(ctx, NewUser{
		Username: "admin",
		Password: "admin123",
		Email:    "admin@yoga.com",
		Role:     "admin",
		FullName: "Admin User",
	})
	if err != nil {
		return fmt.Errorf("seed: admin: %w", err)
	}
	if _, err := s.CreateUser(ctx, NewUser{
		Username: "user",
		Password: "user123",
		Email:    "user@yoga.com",
		Role:     "user",
		FullName: "Demo User",
	}); err != nil {
		return fmt.Errorf("seed: user: %w", err)
	}

	sessions := []struct {
		in      NewSession
		current int
	}{
		{NewSession{
			Title:           "Morning Vinyasa Flow",
			Description:     "Start your day with an energizing vinyasa flow practice",
			Instructor:      "Sarah Johnson",
			Category:        "Vinyasa",
			Level:           "Intermediate",
			Duration:        60,
			MaxParticipants: 20,
			Price:           800,
			Schedule:        "Mon, Wed, Fri - 7:00 AM",
		}, 8},
		{NewSession{
			Title:           "Morning Hatha Yoga",
			Description:     "A gentle practice suitable for all levels",
			Instructor:      "Mike Chen",
			Category:        "Hatha",
			Level:           "Beginner",
			Duration:        60,
			MaxParticipants: 15,
			Price:           600,
			Schedule:        "Tue, Thu - 10:00 AM",
		}, 5},
		{NewSession{
			Title:           "Power Yoga",
			Description:     "High-intensity yoga for strength and stamina",
			Instructor:      "Emma Davis",
			Category:        "Vinyasa",
			Level:           "Advanced",
			Duration:        60,
			MaxParticipants: 12,
			Price:           1000,
			Schedule:        "Mon, Wed - 6:00 PM",
		}, 3},
	}
	for _, it := range sessions {
		created, err := s.CreateSession(ctx, it.in)
		if err != nil {
			return fmt.Errorf("seed: session %q: %w", it.in.Title, err)
		}
		if it.current > 0 {
			n := it.current
			if _, _, err := s.UpdateSession(ctx, created.ID, SessionUpdate{CurrentParticipants: &n}); err != nil {
				return fmt.Errorf("seed: session %q participants: %w", it.in.Title, err)
			}
		}
	}

	exercises := []NewExercise{
		{
			Title:        "Downward Dog",
			Description:  "A foundational pose that stretches and strengthens the body",
			VideoURL:     "https://example.com/downward-dog",
			Duration:     60,
			Level:        "beginner",
			Category:     "strength",
			ThumbnailURL: "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b",
		},
		{
			Title:        "Warrior II",
			Description:  "Build strength and stability in the legs and core",
			VideoURL:     "https://example.com/warrior-2",
			Duration:     45,
			Level:        "intermediate",
			Category:     "strength",
			ThumbnailURL: "https://images.unsplash.com/photo-1588286840104-8957b019727f",
		},
	}
	for _, in := range exercises {
		if _, err := s.CreateExercise(ctx, in); err != nil {
			return fmt.Errorf("seed: exercise %q: %w", in.Title, err)
		}
	}

	announcements := []NewAnnouncement{
		{
			Title:   "Welcome to Our Yoga Studio!",
			Content: "We're excited to have you join our community. Check out our class schedule and book your first session today!",
		},
		{
			Title:   "New Advanced Classes Added",
			Content: "We've added new advanced level classes for experienced practitioners. Book now to secure your spot!",
		},
	}
	for _, in := range announcements {
		if _, err := s.CreateAnnouncement(ctx, admin.ID, in); err != nil {
			return fmt.Errorf("seed: announcement %q: %w", in.Title, err)
		}
	}
	return nil
}
