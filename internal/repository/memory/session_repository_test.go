package memory

import (
	"testing"
	"time"

	"bfsi-assistant-be/pkg/store"
)

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository()

	session := &store.Session{
		ID:        "session-1",
		CreatedAt: time.Now(),
		Turns: []store.ChatTurn{
			{Role: "model", Content: "Hello!"},
		},
	}

	repo.Save(session)

	got, found := repo.Get("session-1")
	if !found {
		t.Fatal("saved session not found")
	}
	if got.ID != "session-1" || len(got.Turns) != 1 {
		t.Errorf("got session %+v", got)
	}

	if _, found := repo.Get("missing"); found {
		t.Error("unexpected hit for unknown session id")
	}

	repo.Delete("session-1")
	if _, found := repo.Get("session-1"); found {
		t.Error("session still present after delete")
	}
}

func TestSessionRepositorySaveOverwrites(t *testing.T) {
	repo := NewSessionRepository()

	repo.Save(&store.Session{ID: "s", LastQuery: "first"})
	repo.Save(&store.Session{ID: "s", LastQuery: "second"})

	got, found := repo.Get("s")
	if !found {
		t.Fatal("session not found")
	}
	if got.LastQuery != "second" {
		t.Errorf("LastQuery = %q, want the latest save", got.LastQuery)
	}
}
