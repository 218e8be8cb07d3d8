package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingCancelled = "booking_cancelled"
	EventBookingCompleted = "booking_completed"
	EventHotelAdded       = "hotel_added"
	EventHotelRemoved     = "hotel_removed"
	EventUserRegistered   = "user_registered"
)

// BookingEventPayload describes the booking snapshot carried by lifecycle
// events.
type BookingEventPayload struct {
	BookingID  int     `json:"booking_id"`
	HotelID    int     `json:"hotel_id"`
	RoomNumber int     `json:"room_number"`
	ClientName string  `json:"client_name"`
	CheckIn    string  `json:"check_in"`
	CheckOut   string  `json:"check_out"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
	Actor      string  `json:"actor,omitempty"`
}

// HotelEventPayload describes catalog changes.
type HotelEventPayload struct {
	HotelID int    `json:"hotel_id"`
	Name    string `json:"name,omitempty"`
	City    string `json:"city,omitempty"`
	Actor   string `json:"actor,omitempty"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// Bus provides in-process pub/sub for events.
type Bus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *Bus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *Bus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *Bus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
