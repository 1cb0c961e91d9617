package routes_test

import (
	"net/http"
	"testing"

	"github.com/vollnycoelho/yogaa/models"
)

func TestExerciseRoutes(t *testing.T) {
	s, _ := newTestServer(t)
	admin := login(t, s, "admin", "admin123")
	user := login(t, s, "user", "user123")

	w := doReq(s, http.MethodGet, "/api/exercises", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: code=%d", w.Code)
	}
	if seeded := decode[[]models.Exercise](t, w); len(seeded) != 2 {
		t.Fatalf("seed exercises = %d, want 2", len(seeded))
	}

	body := `{"title":"Tree Pose","description":"balance","videoUrl":"https://example.com/tree",
		"duration":30,"level":"beginner","category":"balance"}`
	if w := doReq(s, http.MethodPost, "/api/exercises", body, user); w.Code != http.StatusForbidden {
		t.Fatalf("non-admin create: code=%d", w.Code)
	}
	w = doReq(s, http.MethodPost, "/api/exercises", body, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("create: code=%d body=%s", w.Code, w.Body.String())
	}
	created := decode[models.Exercise](t, w)

	w = doReq(s, http.MethodDelete, "/api/exercises/"+created.ID, "", admin)
	if w.Code != http.StatusOK || !decode[map[string]bool](t, w)["success"] {
		t.Fatalf("delete: code=%d body=%s", w.Code, w.Body.String())
	}
	// idempotent in effect: reports failure, not an error
	w = doReq(s, http.MethodDelete, "/api/exercises/"+created.ID, "", admin)
	if w.Code != http.StatusOK || decode[map[string]bool](t, w)["success"] {
		t.Fatalf("delete missing: code=%d body=%s", w.Code, w.Body.String())
	}
}

func TestAnnouncementRoutes(t *testing.T) {
	s, store := newTestServer(t)
	admin := login(t, s, "admin", "admin123")
	user := login(t, s, "user", "user123")

	w := doReq(s, http.MethodGet, "/api/announcements", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: code=%d", w.Code)
	}
	if seeded := decode[[]models.Announcement](t, w); len(seeded) != 2 {
		t.Fatalf("seed announcements = %d, want 2", len(seeded))
	}

	body := `{"title":"Studio closed Friday","content":"See you Saturday!"}`
	if w := doReq(s, http.MethodPost, "/api/announcements", body, user); w.Code != http.StatusForbidden {
		t.Fatalf("non-admin create: code=%d", w.Code)
	}
	w = doReq(s, http.MethodPost, "/api/announcements", body, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("create: code=%d body=%s", w.Code, w.Body.String())
	}
	created := decode[models.Announcement](t, w)

	adminUser, _, _ := store.GetUserByUsername(t.Context(), "admin")
	if created.AuthorID != adminUser.ID {
		t.Fatalf("author = %q, want admin id", created.AuthorID)
	}

	// newest first
	w = doReq(s, http.MethodGet, "/api/announcements", "", nil)
	list := decode[[]models.Announcement](t, w)
	if len(list) != 3 || list[0].ID != created.ID {
		t.Fatalf("list after create = %+v", list)
	}

	if w := doReq(s, http.MethodDelete, "/api/announcements/"+created.ID, "", admin); w.Code != http.StatusOK {
		t.Fatalf("delete: code=%d", w.Code)
	}
}
