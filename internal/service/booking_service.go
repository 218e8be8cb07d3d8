package service

import (
	"fmt"

	"hotelier/internal/events"
	"hotelier/internal/metrics"
	"hotelier/internal/models"
	"hotelier/internal/storage"

	"github.com/rs/zerolog"
)

// HotelFinder это часть каталога отелей, которая нужна леджеру: поиск
// отеля по идентификатору ради существования и цены номера. Леджер каталог
// никогда не изменяет.
type HotelFinder interface {
	FindByID(id int) (*models.Hotel, bool)
}

// Actor сообщает логин активной сессии. События аудита несут его в поле
// actor, пустая строка означает отсутствие сессии.
type Actor interface {
	CurrentUsername() string
}

// BookingService — леджер бронирований: проверка доступности, создание,
// отмена и завершение, запросы по коллекции. Каждая успешная мутация
// завершается полной перезаписью файла бронирований.
type BookingService struct {
	bookings *storage.BookingStore
	hotels   HotelFinder
	bus      *events.Bus
	actor    Actor
	logger   *zerolog.Logger
}

func NewBookingService(bookings *storage.BookingStore, hotels HotelFinder, bus *events.Bus, actor Actor, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		hotels:   hotels,
		bus:      bus,
		actor:    actor,
		logger:   logger,
	}
}

func (s *BookingService) actorName() string {
	if s.actor == nil {
		return ""
	}
	return s.actor.CurrentUsername()
}

// CheckAvailability возвращает nil, когда отель и номер существуют и ни
// одно активное бронирование этого номера не пересекается с диапазоном.
func (s *BookingService) CheckAvailability(hotelID, roomNumber int, checkIn, checkOut string) error {
	hotel, ok := s.hotels.FindByID(hotelID)
	if !ok {
		return fmt.Errorf("hotel %d: %w", hotelID, storage.ErrHotelNotFound)
	}
	if _, ok := hotel.Room(roomNumber); !ok {
		return fmt.Errorf("room %d in hotel %d: %w", roomNumber, hotelID, storage.ErrRoomNotFound)
	}

	for _, b := range s.bookings.All() {
		if b.HotelID == hotelID && b.RoomNumber == roomNumber && b.Overlaps(checkIn, checkOut) {
			return fmt.Errorf("room %d in hotel %d for %s..%s: %w",
				roomNumber, hotelID, checkIn, checkOut, storage.ErrNotAvailable)
		}
	}
	return nil
}

// CreateBooking создаёт активное бронирование. Идентификатор выделяется до
// валидации и не возвращается обратно, если собранная запись будет
// отклонена: в нумерации остаётся разрыв. Так вела себя система всегда, и
// уже сохранённые файлы содержат такие разрывы.
func (s *BookingService) CreateBooking(hotelID, roomNumber int, clientName, passport, checkIn, checkOut string) (booking models.Booking, err error) {
	defer func() { metrics.IncBookingOp("create", err) }()

	if err = s.CheckAvailability(hotelID, roomNumber, checkIn, checkOut); err != nil {
		return models.Booking{}, err
	}

	hotel, ok := s.hotels.FindByID(hotelID)
	if !ok {
		return models.Booking{}, fmt.Errorf("hotel %d: %w", hotelID, storage.ErrHotelNotFound)
	}
	room, ok := hotel.Room(roomNumber)
	if !ok {
		return models.Booking{}, fmt.Errorf("room %d in hotel %d: %w", roomNumber, hotelID, storage.ErrRoomNotFound)
	}

	id := s.bookings.AllocateID()
	booking = models.NewBooking(id, hotelID, roomNumber, clientName, passport, checkIn, checkOut)
	// Стоимость считается прямым произведением. Календарно перевёрнутый
	// диапазон, прошедший строковую проверку порядка, даёт отрицательное
	// число ночей и отрицательную стоимость, которую отсекает валидация.
	booking.TotalPrice = room.PricePerNight * float64(booking.Nights())

	if err = booking.Validate(); err != nil {
		s.logger.Warn().Err(err).Int("booking_id", id).Msg("booking rejected after id allocation, id gap left behind")
		return models.Booking{}, err
	}

	s.bookings.Append(booking)
	if err = s.bookings.Save(); err != nil {
		// запись уже в памяти, на диске её нет до следующего
		// успешного сохранения
		s.logger.Error().Err(err).Int("booking_id", id).Msg("booking persisted in memory only")
		return booking, err
	}

	s.publish(events.EventBookingCreated, booking)
	s.logger.Info().Int("booking_id", id).Int("hotel_id", hotelID).Int("room", roomNumber).
		Str("check_in", checkIn).Str("check_out", checkOut).Float64("total", booking.TotalPrice).
		Msg("booking created")
	return booking, nil
}

// CancelBooking переводит бронирование в статус Cancelled и сохраняет
// коллекцию. Завершённое или уже отменённое бронирование не меняется.
func (s *BookingService) CancelBooking(id int) (err error) {
	defer func() { metrics.IncBookingOp("cancel", err) }()
	return s.transition(id, events.EventBookingCancelled, (*models.Booking).Cancel)
}

// CompleteBooking переводит бронирование в статус Completed и сохраняет
// коллекцию.
func (s *BookingService) CompleteBooking(id int) (err error) {
	defer func() { metrics.IncBookingOp("complete", err) }()
	return s.transition(id, events.EventBookingCompleted, (*models.Booking).Complete)
}

func (s *BookingService) transition(id int, eventType string, move func(*models.Booking) error) error {
	booking, err := s.bookings.Get(id)
	if err != nil {
		return err
	}
	if err := move(&booking); err != nil {
		return fmt.Errorf("booking %d: %w", id, err)
	}
	if err := s.bookings.Put(booking); err != nil {
		return err
	}
	if err := s.bookings.Save(); err != nil {
		return err
	}

	s.publish(eventType, booking)
	s.logger.Info().Int("booking_id", id).Str("status", booking.Status).Msg("booking status changed")
	return nil
}

func (s *BookingService) Get(id int) (models.Booking, error) {
	return s.bookings.Get(id)
}

func (s *BookingService) All() []models.Booking {
	return s.bookings.All()
}

func (s *BookingService) ByClient(clientName string) []models.Booking {
	return s.bookings.ByClient(clientName)
}

func (s *BookingService) ByPassport(passport string) []models.Booking {
	return s.bookings.ByPassport(passport)
}

func (s *BookingService) ByHotel(hotelID int) []models.Booking {
	return s.bookings.ByHotel(hotelID)
}

func (s *BookingService) ByStatus(status string) []models.Booking {
	return s.bookings.ByStatus(status)
}

func (s *BookingService) Active() []models.Booking {
	return s.bookings.Active()
}

func (s *BookingService) SortedByCheckIn() []models.Booking {
	return s.bookings.SortedByCheckIn()
}

func (s *BookingService) SortedByPrice() []models.Booking {
	return s.bookings.SortedByPrice()
}

func (s *BookingService) ByCheckInRange(start, end string) []models.Booking {
	return s.bookings.ByCheckInRange(start, end)
}

func (s *BookingService) Count() int {
	return s.bookings.Count()
}

// Revenue выручка: сумма по завершённым бронированиям.
func (s *BookingService) Revenue() float64 {
	return s.bookings.Revenue()
}

func (s *BookingService) Save() error {
	return s.bookings.Save()
}

func (s *BookingService) publish(eventType string, b models.Booking) {
	if s.bus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:  b.ID,
		HotelID:    b.HotelID,
		RoomNumber: b.RoomNumber,
		ClientName: b.ClientName,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Status:     b.Status,
		TotalPrice: b.TotalPrice,
		Actor:      s.actorName(),
	}

	if err := s.bus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int("booking_id", b.ID).Msg("publish event error")
	}
}
