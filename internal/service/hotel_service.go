package service

import (
	"fmt"

	"hotelier/internal/events"
	"hotelier/internal/models"
	"hotelier/internal/storage"

	"github.com/rs/zerolog"
)

// BookingLookup это часть леджера, которую каталог читает при удалении
// отеля, чтобы сообщить об осиротевших бронированиях.
type BookingLookup interface {
	ByHotel(hotelID int) []models.Booking
}

// HotelService управляет каталогом отелей и их номерами.
type HotelService struct {
	hotels   *storage.HotelStore
	bookings BookingLookup
	bus      *events.Bus
	actor    Actor
	logger   *zerolog.Logger
}

func NewHotelService(hotels *storage.HotelStore, bookings BookingLookup, bus *events.Bus, actor Actor, logger *zerolog.Logger) *HotelService {
	return &HotelService{
		hotels:   hotels,
		bookings: bookings,
		bus:      bus,
		actor:    actor,
		logger:   logger,
	}
}

func (s *HotelService) actorName() string {
	if s.actor == nil {
		return ""
	}
	return s.actor.CurrentUsername()
}

func (s *HotelService) AddHotel(h *models.Hotel) error {
	if err := s.hotels.Add(h); err != nil {
		return err
	}

	s.publishHotel(events.EventHotelAdded, h.ID, h.Name, h.City)
	s.logger.Info().Int("hotel_id", h.ID).Str("name", h.Name).Str("type", h.Type).Msg("hotel added")
	return nil
}

// RemoveHotel удаляет отель из каталога. Бронирования этого отеля
// каскадно не отменяются: они остаются в леджере со ссылкой в никуда, и
// это фиксируется в журнале.
func (s *HotelService) RemoveHotel(id int) error {
	hotel, ok := s.hotels.FindByID(id)
	if !ok {
		return fmt.Errorf("hotel %d: %w", id, storage.ErrHotelNotFound)
	}

	if s.bookings != nil {
		var orphaned []int
		for _, b := range s.bookings.ByHotel(id) {
			if b.IsActive() {
				orphaned = append(orphaned, b.ID)
			}
		}
		if len(orphaned) > 0 {
			s.logger.Warn().Int("hotel_id", id).Ints("booking_ids", orphaned).
				Msg("removing hotel with active bookings, bookings are orphaned")
		}
	}

	if err := s.hotels.Remove(id); err != nil {
		return err
	}

	s.publishHotel(events.EventHotelRemoved, id, hotel.Name, hotel.City)
	s.logger.Info().Int("hotel_id", id).Msg("hotel removed")
	return nil
}

// AddRoom добавляет номер существующему отелю и сохраняет каталог.
func (s *HotelService) AddRoom(hotelID int, room models.Room) error {
	hotel, ok := s.hotels.FindByID(hotelID)
	if !ok {
		return fmt.Errorf("hotel %d: %w", hotelID, storage.ErrHotelNotFound)
	}
	if err := hotel.AddRoom(room); err != nil {
		return err
	}
	return s.hotels.Save()
}

// SetRoomAvailability помечает номер занятым или свободным.
func (s *HotelService) SetRoomAvailability(hotelID, roomNumber int, available bool) error {
	hotel, ok := s.hotels.FindByID(hotelID)
	if !ok {
		return fmt.Errorf("hotel %d: %w", hotelID, storage.ErrHotelNotFound)
	}

	var err error
	if available {
		err = hotel.ReleaseRoom(roomNumber)
	} else {
		err = hotel.BookRoom(roomNumber)
	}
	if err != nil {
		return fmt.Errorf("room %d in hotel %d: %w", roomNumber, hotelID, storage.ErrRoomNotFound)
	}
	return s.hotels.Save()
}

// ApplyHotelDiscount устанавливает скидку Budget-отелю и применяет её к
// цене каждого номера. Цены меняются безвозвратно.
func (s *HotelService) ApplyHotelDiscount(hotelID int, percent float64) error {
	hotel, ok := s.hotels.FindByID(hotelID)
	if !ok {
		return fmt.Errorf("hotel %d: %w", hotelID, storage.ErrHotelNotFound)
	}
	if hotel.Type != models.HotelTypeBudget {
		return fmt.Errorf("hotel %d is not a budget hotel", hotelID)
	}
	if percent < 0 || percent > 100 {
		return fmt.Errorf("discount %.1f%% out of range [0,100]", percent)
	}

	hotel.DiscountPercent = percent
	if err := hotel.ApplyDiscountToAllRooms(); err != nil {
		return err
	}

	s.logger.Info().Int("hotel_id", hotelID).Float64("percent", percent).Msg("discount applied to all rooms")
	return s.hotels.Save()
}

func (s *HotelService) FindByID(id int) (*models.Hotel, bool) {
	return s.hotels.FindByID(id)
}

func (s *HotelService) All() []*models.Hotel {
	return s.hotels.All()
}

func (s *HotelService) ByCity(city string) []*models.Hotel {
	return s.hotels.ByCity(city)
}

func (s *HotelService) ByType(hotelType string) []*models.Hotel {
	return s.hotels.ByType(hotelType)
}

func (s *HotelService) ByStars(stars int) []*models.Hotel {
	return s.hotels.ByStars(stars)
}

func (s *HotelService) FindAvailableRooms(city, roomClass string, minCapacity int, maxPrice float64) []*models.Hotel {
	return s.hotels.FindAvailableRooms(city, roomClass, minCapacity, maxPrice)
}

func (s *HotelService) SortedByAveragePrice() []*models.Hotel {
	return s.hotels.SortedByAveragePrice()
}

func (s *HotelService) SortedByName() []*models.Hotel {
	return s.hotels.SortedByName()
}

func (s *HotelService) Count() int {
	return s.hotels.Count()
}

func (s *HotelService) Save() error {
	return s.hotels.Save()
}

func (s *HotelService) publishHotel(eventType string, id int, name, city string) {
	if s.bus == nil {
		return
	}
	payload := events.HotelEventPayload{HotelID: id, Name: name, City: city, Actor: s.actorName()}
	if err := s.bus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int("hotel_id", id).Msg("publish event error")
	}
}
