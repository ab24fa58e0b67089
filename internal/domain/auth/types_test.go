package auth

import (
	"testing"
	"time"
)

func TestSession_IsGuest(t *testing.T) {
	s := Session{Role: RoleGuest}
	if !s.IsGuest() {
		t.Fatalf("expected guest")
	}
	if (Session{Role: RoleEmployee}).IsGuest() {
		t.Fatalf("did not expect guest")
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range AllRoles() {
		if !r.Valid() {
			t.Fatalf("catalog role %q reported invalid", r)
		}
	}
	if Role("superuser").Valid() {
		t.Fatalf("unknown role reported valid")
	}
	if Role("").Valid() {
		t.Fatalf("empty role reported valid")
	}
}

func TestIdentity_SimpleFields(t *testing.T) {
	id := Identity{UserID: "u", Email: "e", ExpiresAt: time.Now().Add(time.Hour)}
	if id.UserID != "u" || id.Email != "e" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}
