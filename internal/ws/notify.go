package ws

import (
	"context"
	"encoding/json"
	"time"

	"skill-match/internal/domain/user"
	"skill-match/internal/session"
	"skill-match/internal/usecase"
)

type UserRegisteredEvent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SkillSetKey string `json:"skill_set_key"`
	Timestamp   string `json:"timestamp"`
}

// Notifier broadcasts registrations to every connected session.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

var _ usecase.RegistrationNotifier = (*Notifier)(nil)

func (n *Notifier) UserRegistered(_ context.Context, u user.User) {
	if n == nil || n.hub == nil {
		return
	}
	evt := session.Event{
		Type: session.EventUserRegistered,
		Data: UserRegisteredEvent{
			ID:          u.ID,
			Name:        u.Name,
			SkillSetKey: u.SkillSetKey,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		},
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
