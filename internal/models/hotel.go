package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRoomExists  = errors.New("room with this number already exists")
	ErrRoomMissing = errors.New("room not found in hotel")
)

// Hotel запись отеля. Поле Type различает два варианта: Premium несёт
// список сервисов, Budget — флаги бесплатных услуг и процент скидки.
// Общая часть (идентификация, комнаты, средняя цена, рейтинг) одинакова
// для обоих вариантов.
type Hotel struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	City        string `json:"city"`
	Description string `json:"description"`
	Stars       int    `json:"stars"`
	Rooms       []Room `json:"rooms"`

	// Premium
	Services []string `json:"services,omitempty"`

	// Budget
	FreeWifi        bool    `json:"free_wifi,omitempty"`
	FreeParking     bool    `json:"free_parking,omitempty"`
	Breakfast       bool    `json:"breakfast,omitempty"`
	DiscountPercent float64 `json:"discount_percent,omitempty"`
}

func NewPremiumHotel(id int, name, city, description string, stars int) *Hotel {
	return &Hotel{ID: id, Type: HotelTypePremium, Name: name, City: city, Description: description, Stars: stars}
}

func NewBudgetHotel(id int, name, city, description string, stars int) *Hotel {
	return &Hotel{ID: id, Type: HotelTypeBudget, Name: name, City: city, Description: description, Stars: stars}
}

func (h *Hotel) Validate() error {
	if h.Name == "" || h.City == "" {
		return fmt.Errorf("hotel %d: name and city are required", h.ID)
	}
	switch h.Type {
	case HotelTypePremium:
		if h.Stars < 4 || h.Stars > MaxStars {
			return fmt.Errorf("hotel %d: premium hotel must have 4-5 stars, got %d", h.ID, h.Stars)
		}
	case HotelTypeBudget:
		if h.Stars < MinStars || h.Stars > 3 {
			return fmt.Errorf("hotel %d: budget hotel must have 1-3 stars, got %d", h.ID, h.Stars)
		}
		if h.DiscountPercent < 0 || h.DiscountPercent > 100 {
			return fmt.Errorf("hotel %d: discount %.1f%% out of range [0,100]", h.ID, h.DiscountPercent)
		}
	default:
		return fmt.Errorf("hotel %d: unknown type %q", h.ID, h.Type)
	}
	return nil
}

// AddRoom добавляет номер, сохраняя порядок вставки. Номера с
// повторяющимся числом и номера с некорректными полями отклоняются.
func (h *Hotel) AddRoom(room Room) error {
	if err := room.Validate(); err != nil {
		return err
	}
	if _, ok := h.Room(room.Number); ok {
		return ErrRoomExists
	}
	h.Rooms = append(h.Rooms, room)
	return nil
}

func (h *Hotel) RemoveRoom(number int) bool {
	for i, room := range h.Rooms {
		if room.Number == number {
			h.Rooms = append(h.Rooms[:i], h.Rooms[i+1:]...)
			return true
		}
	}
	return false
}

// Room возвращает копию номера по его числу. Для изменения номера
// используются методы отеля, указатели наружу не выдаются.
func (h *Hotel) Room(number int) (Room, bool) {
	for _, room := range h.Rooms {
		if room.Number == number {
			return room, true
		}
	}
	return Room{}, false
}

func (h *Hotel) BookRoom(number int) error {
	for i := range h.Rooms {
		if h.Rooms[i].Number == number {
			h.Rooms[i].Book()
			return nil
		}
	}
	return ErrRoomMissing
}

func (h *Hotel) ReleaseRoom(number int) error {
	for i := range h.Rooms {
		if h.Rooms[i].Number == number {
			h.Rooms[i].Release()
			return nil
		}
	}
	return ErrRoomMissing
}

func (h *Hotel) RoomCount() int {
	return len(h.Rooms)
}

func (h *Hotel) HasAvailableRooms() bool {
	for _, room := range h.Rooms {
		if room.Available {
			return true
		}
	}
	return false
}

func (h *Hotel) RoomsByClass(class string) []Room {
	var result []Room
	for _, room := range h.Rooms {
		if room.Class == class {
			result = append(result, room)
		}
	}
	return result
}

// AveragePrice средняя цена за ночь по всем номерам. Для Budget-отеля
// учитывается установленная скидка.
func (h *Hotel) AveragePrice() float64 {
	if len(h.Rooms) == 0 {
		return 0
	}
	var total float64
	for _, room := range h.Rooms {
		total += room.PricePerNight
	}
	avg := total / float64(len(h.Rooms))
	if h.Type == HotelTypeBudget && h.DiscountPercent > 0 {
		avg = avg * (1 - h.DiscountPercent/100)
	}
	return avg
}

// Rating оценка отеля по шкале 0..100.
func (h *Hotel) Rating() int {
	var rating int
	switch h.Type {
	case HotelTypePremium:
		rating = h.Stars*15 + len(h.Services)*5
	case HotelTypeBudget:
		rating = h.Stars * 20
		if h.FreeWifi {
			rating += 10
		}
		if h.FreeParking {
			rating += 10
		}
		if h.Breakfast {
			rating += 10
		}
		if h.DiscountPercent >= 10 {
			rating += 5
		}
		if h.DiscountPercent >= 20 {
			rating += 5
		}
	}
	if rating > 100 {
		rating = 100
	}
	return rating
}

// AddService добавляет сервис Premium-отелю, дубликаты игнорируются.
func (h *Hotel) AddService(service string) {
	if service == "" || h.HasService(service) {
		return
	}
	h.Services = append(h.Services, service)
}

func (h *Hotel) RemoveService(service string) bool {
	for i, s := range h.Services {
		if s == service {
			h.Services = append(h.Services[:i], h.Services[i+1:]...)
			return true
		}
	}
	return false
}

func (h *Hotel) HasService(service string) bool {
	for _, s := range h.Services {
		if s == service {
			return true
		}
	}
	return false
}

// FreeServices перечисляет бесплатные услуги Budget-отеля.
func (h *Hotel) FreeServices() []string {
	var services []string
	if h.FreeWifi {
		services = append(services, "WiFi")
	}
	if h.FreeParking {
		services = append(services, "Parking")
	}
	if h.Breakfast {
		services = append(services, "Breakfast")
	}
	return services
}

// ApplyDiscountToAllRooms применяет скидку Budget-отеля к цене каждого
// номера. Операция необратима, исходные цены не сохраняются.
func (h *Hotel) ApplyDiscountToAllRooms() error {
	if h.DiscountPercent <= 0 {
		return errors.New("discount percent is not set")
	}
	for i := range h.Rooms {
		if err := h.Rooms[i].ApplyDiscount(h.DiscountPercent); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hotel) StarsRepresentation() string {
	return strings.Repeat("★", h.Stars) + fmt.Sprintf(" (%d)", h.Stars)
}
