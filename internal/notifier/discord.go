package notifier

import (
	"fmt"
	"log/slog"

	"github.com/assoclub/club-api/internal/models"
	"github.com/bwmarrin/discordgo"
)

type Notifier interface {
	NotifyEventCreated(event models.Event) error
	NotifyParticipation(member models.Member, event models.Event) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) NotifyEventCreated(event models.Event) error {
	message := fmt.Sprintf("📅 **Nouvel événement**\n**Titre :** %s\n**Date :** %s\n**Lieu :** %s",
		event.Titre,
		event.Date,
		event.Lieu,
	)
	if event.Description != "" {
		message += fmt.Sprintf("\n%s", event.Description)
	}

	return n.send(message)
}

func (n *DiscordNotifier) NotifyParticipation(member models.Member, event models.Event) error {
	message := fmt.Sprintf("🎉 **Nouvelle inscription**\n**Membre :** %s %s\n**Événement :** %s (%s)",
		member.Prenom,
		member.Nom,
		event.Titre,
		event.Date,
	)

	return n.send(message)
}

func (n *DiscordNotifier) send(message string) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		slog.Error("Failed to send discord message", "error", err)
		return err
	}

	return nil
}
