package notification

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// SessionUserKey is the melody session key holding the connected user's id
const SessionUserKey = "userID"

type Service interface {
	SendToUsers(message []byte, userIDs ...uint) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

// SendToUsers writes message to every open session that belongs to one of userIDs
func (s *MelodyService) SendToUsers(message []byte, userIDs ...uint) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	if len(userIDs) == 0 {
		return nil
	}
	return s.m.BroadcastFilter(message, func(session *melody.Session) bool {
		v, ok := session.Get(SessionUserKey)
		if !ok {
			return false
		}
		id, ok := v.(uint)
		if !ok {
			return false
		}
		for _, userID := range userIDs {
			if userID == id {
				return true
			}
		}
		return false
	})
}

// Nop drops every message
type Nop struct{}

func (Nop) SendToUsers([]byte, ...uint) error { return nil }

// Event types
const (
	EventBookingSubmitted     = "booking.submitted"
	EventBookingStatusChanged = "booking.status_changed"
)

// BookingEvent is the websocket payload sent to a booking's owner and tenant
type BookingEvent struct {
	Type        string `json:"type"`
	BookingID   uint   `json:"bookingId"`
	Reference   string `json:"reference"`
	RoomID      uint   `json:"roomId"`
	Status      string `json:"status"`
	StartMonth  string `json:"startMonth"`
	EndMonth    string `json:"endMonth"`
	TotalAmount string `json:"totalAmount"`
}

type MessageBuilder struct {
	event BookingEvent
}

func NewMessageBuilder(eventType string) *MessageBuilder {
	return &MessageBuilder{event: BookingEvent{Type: eventType}}
}

func (b *MessageBuilder) Booking(id uint, reference string, roomID uint) *MessageBuilder {
	b.event.BookingID = id
	b.event.Reference = reference
	b.event.RoomID = roomID
	return b
}

func (b *MessageBuilder) Status(status string) *MessageBuilder {
	b.event.Status = status
	return b
}

func (b *MessageBuilder) Period(start, end string) *MessageBuilder {
	b.event.StartMonth = start
	b.event.EndMonth = end
	return b
}

func (b *MessageBuilder) Amount(amount string) *MessageBuilder {
	b.event.TotalAmount = amount
	return b
}

func (b *MessageBuilder) Build() ([]byte, error) {
	return json.Marshal(b.event)
}
