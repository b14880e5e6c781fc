package handlers

import (
	"context"
	"testing"

	"github.com/assoclub/club-api/internal/config"
	"github.com/assoclub/club-api/internal/models"
)

func TestHandleDeleteEvent_Cascade(t *testing.T) {
	db := newTestDB(t)
	authHandler := newAuthHandler(db)
	handler := NewEventHandler(db, nil, authHandler, &config.Config{})

	member := createMember(t, db, "alice@club.com", "secret123", models.RoleMember, true)
	cookie := cookieFor(t, authHandler, member)

	event := models.Event{Titre: "Tournoi", Date: "2024-06-01", Lieu: "Gymnase"}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	for i := 0; i < 3; i++ {
		p := models.Participation{MembreID: member.ID, EvenementID: event.ID}
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("failed to create participation: %v", err)
		}
	}

	del := &DeleteEventRequest{ID: event.ID}
	del.Cookie = cookie
	if _, err := handler.HandleDeleteEvent(context.Background(), del); err != nil {
		t.Fatalf("HandleDeleteEvent returned error: %v", err)
	}

	var eventCount, participationCount int64
	db.Unscoped().Model(&models.Event{}).Where("id = ?", event.ID).Count(&eventCount)
	db.Unscoped().Model(&models.Participation{}).Where("id_evenement = ?", event.ID).Count(&participationCount)
	if eventCount != 0 {
		t.Errorf("expected event row removed, found %d", eventCount)
	}
	if participationCount != 0 {
		t.Errorf("expected all participation rows removed, found %d", participationCount)
	}

	// Listing participants of the removed event is now a NotFound.
	get := &GetEventRequest{ID: event.ID}
	get.Cookie = cookie
	_, err := handler.HandleGetEvent(context.Background(), get)
	if err == nil {
		t.Fatal("expected not-found error for deleted event, got nil")
	}
	if statusOf(t, err) != 404 {
		t.Errorf("expected 404, got %d", statusOf(t, err))
	}
}

func TestHandleRegisterParticipation(t *testing.T) {
	db := newTestDB(t)
	authHandler := newAuthHandler(db)

	member := createMember(t, db, "alice@club.com", "secret123", models.RoleMember, true)
	cookie := cookieFor(t, authHandler, member)

	event := models.Event{Titre: "Randonnée", Date: "2024-07-14", Lieu: "Forêt"}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	t.Run("DuplicatesAllowedByDefault", func(t *testing.T) {
		handler := NewEventHandler(db, nil, authHandler, &config.Config{})

		input := &RegisterParticipationRequest{ID: event.ID}
		input.Cookie = cookie
		input.Body.MembreID = member.ID

		if _, err := handler.HandleRegisterParticipation(context.Background(), input); err != nil {
			t.Fatalf("first registration failed: %v", err)
		}
		if _, err := handler.HandleRegisterParticipation(context.Background(), input); err != nil {
			t.Fatalf("duplicate registration should be permitted by default, got: %v", err)
		}

		var count int64
		db.Model(&models.Participation{}).
			Where("id_membre = ? AND id_evenement = ?", member.ID, event.ID).
			Count(&count)
		if count != 2 {
			t.Errorf("expected 2 participations, got %d", count)
		}
	})

	t.Run("UniqueWhenEnforced", func(t *testing.T) {
		handler := NewEventHandler(db, nil, authHandler, &config.Config{EnforceUniqueParticipation: true})

		input := &RegisterParticipationRequest{ID: event.ID}
		input.Cookie = cookie
		input.Body.MembreID = member.ID

		_, err := handler.HandleRegisterParticipation(context.Background(), input)
		if err == nil {
			t.Fatal("expected conflict with uniqueness enforced, got nil")
		}
		if statusOf(t, err) != 409 {
			t.Errorf("expected 409, got %d", statusOf(t, err))
		}
	})

	t.Run("UnknownEvent", func(t *testing.T) {
		handler := NewEventHandler(db, nil, authHandler, &config.Config{})

		input := &RegisterParticipationRequest{ID: 9999}
		input.Cookie = cookie
		input.Body.MembreID = member.ID

		_, err := handler.HandleRegisterParticipation(context.Background(), input)
		if err == nil {
			t.Fatal("expected not-found error, got nil")
		}
		if statusOf(t, err) != 404 {
			t.Errorf("expected 404, got %d", statusOf(t, err))
		}
	})

	t.Run("UnknownMember", func(t *testing.T) {
		handler := NewEventHandler(db, nil, authHandler, &config.Config{})

		input := &RegisterParticipationRequest{ID: event.ID}
		input.Cookie = cookie
		input.Body.MembreID = 9999

		_, err := handler.HandleRegisterParticipation(context.Background(), input)
		if err == nil {
			t.Fatal("expected not-found error, got nil")
		}
		if statusOf(t, err) != 404 {
			t.Errorf("expected 404, got %d", statusOf(t, err))
		}
	})
}

func TestHandleCreateEvent_InvalidDate(t *testing.T) {
	db := newTestDB(t)
	authHandler := newAuthHandler(db)
	handler := NewEventHandler(db, nil, authHandler, &config.Config{})

	member := createMember(t, db, "alice@club.com", "secret123", models.RoleMember, true)

	input := &CreateEventRequest{}
	input.Cookie = cookieFor(t, authHandler, member)
	input.Body.Titre = "Tournoi"
	input.Body.Date = "pas-une-date"
	input.Body.Lieu = "Gymnase"

	_, err := handler.HandleCreateEvent(context.Background(), input)
	if err == nil {
		t.Fatal("expected validation error for bad date, got nil")
	}
	if statusOf(t, err) != 422 {
		t.Errorf("expected 422, got %d", statusOf(t, err))
	}
}

func TestHandleUpdateEvent(t *testing.T) {
	db := newTestDB(t)
	authHandler := newAuthHandler(db)
	handler := NewEventHandler(db, nil, authHandler, &config.Config{})

	member := createMember(t, db, "alice@club.com", "secret123", models.RoleMember, true)
	cookie := cookieFor(t, authHandler, member)

	event := models.Event{Titre: "Tournoi", Date: "2024-06-01", Lieu: "Gymnase"}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	input := &UpdateEventRequest{ID: event.ID}
	input.Cookie = cookie
	input.Body.Titre = "Tournoi d'été"
	input.Body.Date = "2024-06-15"
	input.Body.Lieu = "Stade"
	input.Body.Description = "Reporté"

	resp, err := handler.HandleUpdateEvent(context.Background(), input)
	if err != nil {
		t.Fatalf("HandleUpdateEvent returned error: %v", err)
	}
	if resp.Body.Evenement.Titre != "Tournoi d'été" || resp.Body.Evenement.Date != "2024-06-15" {
		t.Errorf("unexpected event after update: %+v", resp.Body.Evenement)
	}
}

// End to end: register, participate, soft delete, and check that
// history survives while the roster forgets.
func TestMembershipLifecycle(t *testing.T) {
	db := newTestDB(t)
	authHandler := newAuthHandler(db)
	memberHandler := NewMemberHandler(db, authHandler)
	eventHandler := NewEventHandler(db, nil, authHandler, &config.Config{})

	// Register member A
	reg := &RegisterRequest{}
	reg.Body.Nom = "Durand"
	reg.Body.Prenom = "Alice"
	reg.Body.Email = "alice@club.com"
	reg.Body.Password = "secret123"
	regResp, err := memberHandler.HandleRegister(context.Background(), reg)
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	memberID := regResp.Body.Membre.ID

	// Login as A
	var stored models.Member
	if err := db.First(&stored, memberID).Error; err != nil {
		t.Fatalf("failed to load member: %v", err)
	}
	cookie := cookieFor(t, authHandler, stored)

	// Create event E and register A for it
	event := models.Event{Titre: "Assemblée", Date: "2024-09-01", Lieu: "Salle des fêtes"}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	part := &RegisterParticipationRequest{ID: event.ID}
	part.Cookie = cookie
	part.Body.MembreID = memberID
	if _, err := eventHandler.HandleRegisterParticipation(context.Background(), part); err != nil {
		t.Fatalf("participation failed: %v", err)
	}

	get := &GetEventRequest{ID: event.ID}
	get.Cookie = cookie
	details, err := eventHandler.HandleGetEvent(context.Background(), get)
	if err != nil {
		t.Fatalf("HandleGetEvent returned error: %v", err)
	}
	if len(details.Body.Participants) != 1 || details.Body.Participants[0].Prenom != "Alice" {
		t.Fatalf("expected Alice in participants, got %+v", details.Body.Participants)
	}

	// Soft-delete A
	del := &DeleteMemberRequest{ID: memberID}
	del.Cookie = cookie
	if _, err := memberHandler.HandleDeleteMember(context.Background(), del); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	// Historical attendance is preserved
	details, err = eventHandler.HandleGetEvent(context.Background(), get)
	if err != nil {
		t.Fatalf("HandleGetEvent returned error: %v", err)
	}
	if len(details.Body.Participants) != 1 {
		t.Errorf("soft delete must not hide historical attendance, got %+v", details.Body.Participants)
	}

	// The active roster forgets A
	list := &ListMembersRequest{}
	list.Cookie = cookie
	roster, err := memberHandler.HandleListMembers(context.Background(), list)
	if err != nil {
		t.Fatalf("HandleListMembers returned error: %v", err)
	}
	for _, m := range roster.Body.Membres {
		if m.ID == memberID {
			t.Errorf("soft-deleted member still in active roster")
		}
	}
}
