package handlers

import (
	"context"
	"testing"

	"github.com/assoclub/club-api/internal/models"
)

func TestHandleUpdateClub(t *testing.T) {
	db := newTestDB(t)
	authHandler := newAuthHandler(db)
	handler := NewClubHandler(db, authHandler)

	club := models.Club{Nom: "Mon Club", Description: "Le club historique"}
	if err := db.Create(&club).Error; err != nil {
		t.Fatalf("failed to create club: %v", err)
	}

	admin := createMember(t, db, "admin@club.com", "admin", models.RoleAdmin, true)
	member := createMember(t, db, "alice@club.com", "secret123", models.RoleMember, true)

	t.Run("NonAdminRejected", func(t *testing.T) {
		input := &UpdateClubRequest{}
		input.Cookie = cookieFor(t, authHandler, member)
		input.Body.Nom = "Club pirate"
		input.Body.Description = "pwned"

		_, err := handler.HandleUpdateClub(context.Background(), input)
		if err == nil {
			t.Fatal("expected forbidden error, got nil")
		}
		if statusOf(t, err) != 403 {
			t.Errorf("expected 403, got %d", statusOf(t, err))
		}

		var stored models.Club
		db.First(&stored)
		if stored.Nom != "Mon Club" || stored.Description != "Le club historique" {
			t.Errorf("club row changed despite rejection: %+v", stored)
		}
	})

	t.Run("AdminUpdates", func(t *testing.T) {
		input := &UpdateClubRequest{}
		input.Cookie = cookieFor(t, authHandler, admin)
		input.Body.Nom = "Nouveau Club"
		input.Body.Description = "Nouvelle description"

		resp, err := handler.HandleUpdateClub(context.Background(), input)
		if err != nil {
			t.Fatalf("HandleUpdateClub returned error: %v", err)
		}
		if resp.Body.Club.Nom != "Nouveau Club" {
			t.Errorf("unexpected club in response: %+v", resp.Body.Club)
		}

		// Still a singleton: updated in place, never duplicated.
		var count int64
		db.Model(&models.Club{}).Count(&count)
		if count != 1 {
			t.Errorf("expected exactly one club row, got %d", count)
		}
	})
}

func TestHandleGetClub(t *testing.T) {
	db := newTestDB(t)
	authHandler := newAuthHandler(db)
	handler := NewClubHandler(db, authHandler)

	club := models.Club{Nom: "Mon Club", Description: "Le club historique"}
	if err := db.Create(&club).Error; err != nil {
		t.Fatalf("failed to create club: %v", err)
	}
	member := createMember(t, db, "alice@club.com", "secret123", models.RoleMember, true)

	input := &GetClubRequest{}
	input.Cookie = cookieFor(t, authHandler, member)

	resp, err := handler.HandleGetClub(context.Background(), input)
	if err != nil {
		t.Fatalf("HandleGetClub returned error: %v", err)
	}
	if resp.Body.Nom != "Mon Club" {
		t.Errorf("expected club name 'Mon Club', got %q", resp.Body.Nom)
	}
}
