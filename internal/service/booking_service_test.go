package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"hotelier/internal/events"
	"hotelier/internal/models"
	"hotelier/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBookingService(t *testing.T) (*BookingService, *storage.HotelStore, *events.Bus) {
	t.Helper()
	logger := zerolog.New(os.Stdout)
	dir := t.TempDir()

	hotelStore := storage.NewHotelStore(filepath.Join(dir, "hotels.csv"), &logger)
	hotel := models.NewPremiumHotel(0, "Гранд Плаза", "Москва", "", 5)
	require.NoError(t, hotel.AddRoom(models.NewRoom(101, models.RoomClassStandard, 2, 500)))
	require.NoError(t, hotelStore.Add(hotel))

	bookingStore := storage.NewBookingStore(filepath.Join(dir, "bookings.csv"), &logger)
	bus := events.NewBus()
	return NewBookingService(bookingStore, hotelStore, bus, nil, &logger), hotelStore, bus
}

type staticActor string

func (a staticActor) CurrentUsername() string { return string(a) }

func TestCreateBooking(t *testing.T) {
	svc, _, bus := setupBookingService(t)

	var published []string
	bus.Subscribe(events.EventBookingCreated, func(e *events.Event) error {
		published = append(published, e.Type)
		return nil
	})

	booking, err := svc.CreateBooking(1, 101, "Jane Doe", "AB123456", "01.06.2025", "05.06.2025")
	require.NoError(t, err)

	assert.Equal(t, 1, booking.ID)
	assert.Equal(t, 4, booking.Nights())
	assert.InDelta(t, 2000.0, booking.TotalPrice, 1e-9)
	assert.Equal(t, models.StatusActive, booking.Status)
	assert.Equal(t, []string{events.EventBookingCreated}, published)
}

func TestCreateBookingRecordsActor(t *testing.T) {
	logger := zerolog.New(os.Stdout)
	dir := t.TempDir()

	hotelStore := storage.NewHotelStore(filepath.Join(dir, "hotels.csv"), &logger)
	hotel := models.NewPremiumHotel(0, "Гранд Плаза", "Москва", "", 5)
	require.NoError(t, hotel.AddRoom(models.NewRoom(101, models.RoomClassStandard, 2, 500)))
	require.NoError(t, hotelStore.Add(hotel))

	bookingStore := storage.NewBookingStore(filepath.Join(dir, "bookings.csv"), &logger)
	bus := events.NewBus()
	svc := NewBookingService(bookingStore, hotelStore, bus, staticActor("admin"), &logger)

	var payload events.BookingEventPayload
	bus.Subscribe(events.EventBookingCreated, func(e *events.Event) error {
		return json.Unmarshal(e.Payload, &payload)
	})

	_, err := svc.CreateBooking(1, 101, "Jane Doe", "AB123456", "01.06.2025", "05.06.2025")
	require.NoError(t, err)
	assert.Equal(t, "admin", payload.Actor)
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	svc, _, _ := setupBookingService(t)

	_, err := svc.CreateBooking(1, 101, "Jane Doe", "AB123456", "01.06.2025", "05.06.2025")
	require.NoError(t, err)

	// Диапазон внутри существующего бронирования.
	_, err = svc.CreateBooking(1, 101, "John Smith", "CD987654", "03.06.2025", "04.06.2025")
	assert.ErrorIs(t, err, storage.ErrNotAvailable)

	// Соприкасающиеся границы конфликтом не считаются.
	_, err = svc.CreateBooking(1, 101, "John Smith", "CD987654", "05.06.2025", "09.06.2025")
	assert.NoError(t, err)
}

func TestCancelBookingFreesRange(t *testing.T) {
	svc, _, _ := setupBookingService(t)

	booking, err := svc.CreateBooking(1, 101, "Jane Doe", "AB123456", "01.06.2025", "05.06.2025")
	require.NoError(t, err)

	_, err = svc.CreateBooking(1, 101, "John Smith", "CD987654", "03.06.2025", "04.06.2025")
	require.ErrorIs(t, err, storage.ErrNotAvailable)

	require.NoError(t, svc.CancelBooking(booking.ID))

	_, err = svc.CreateBooking(1, 101, "John Smith", "CD987654", "03.06.2025", "04.06.2025")
	assert.NoError(t, err)
}

func TestCreateBookingUnknownHotelOrRoom(t *testing.T) {
	svc, _, _ := setupBookingService(t)

	_, err := svc.CreateBooking(99, 101, "Jane Doe", "AB123456", "01.06.2025", "05.06.2025")
	assert.ErrorIs(t, err, storage.ErrHotelNotFound)

	_, err = svc.CreateBooking(1, 999, "Jane Doe", "AB123456", "01.06.2025", "05.06.2025")
	assert.ErrorIs(t, err, storage.ErrRoomNotFound)
}

func TestCreateBookingLeavesIDGapOnRejection(t *testing.T) {
	svc, _, _ := setupBookingService(t)

	// Пустое имя клиента проходит проверку доступности, но валидацию
	// записи не проходит. Выделенный id при этом не возвращается.
	_, err := svc.CreateBooking(1, 101, "", "AB123456", "01.06.2025", "05.06.2025")
	require.Error(t, err)
	assert.Equal(t, 0, svc.Count())

	booking, err := svc.CreateBooking(1, 101, "Jane Doe", "AB123456", "01.06.2025", "05.06.2025")
	require.NoError(t, err)
	assert.Equal(t, 2, booking.ID, "id 1 is lost to the rejected attempt")
}

func TestCreateBookingRejectsCalendarInvertedRange(t *testing.T) {
	svc, _, _ := setupBookingService(t)

	// Пара "02.01.2025" < "15.12.2024" проходит строковую проверку
	// порядка, но календарно диапазон перевёрнут: ночей получается
	// отрицательное число, стоимость отрицательная, запись отклоняется.
	_, err := svc.CreateBooking(1, 101, "Jane Doe", "AB123456", "02.01.2025", "15.12.2024")
	require.Error(t, err)
	assert.Equal(t, 0, svc.Count())

	// Выделенный id потрачен на отклонённую попытку.
	booking, err := svc.CreateBooking(1, 101, "Jane Doe", "AB123456", "01.06.2025", "05.06.2025")
	require.NoError(t, err)
	assert.Equal(t, 2, booking.ID)
}

func TestBookingStatusTransitions(t *testing.T) {
	svc, _, _ := setupBookingService(t)

	booking, err := svc.CreateBooking(1, 101, "Jane Doe", "AB123456", "01.06.2025", "05.06.2025")
	require.NoError(t, err)

	require.NoError(t, svc.CompleteBooking(booking.ID))
	assert.ErrorIs(t, svc.CancelBooking(booking.ID), models.ErrTerminalStatus)
	assert.ErrorIs(t, svc.CompleteBooking(booking.ID), models.ErrTerminalStatus)

	assert.ErrorIs(t, svc.CancelBooking(999), storage.ErrBookingNotFound)
}

func TestRevenueCountsOnlyCompleted(t *testing.T) {
	svc, _, _ := setupBookingService(t)

	first, err := svc.CreateBooking(1, 101, "Jane Doe", "AB123456", "01.06.2025", "05.06.2025")
	require.NoError(t, err)
	second, err := svc.CreateBooking(1, 101, "John Smith", "CD987654", "10.06.2025", "12.06.2025")
	require.NoError(t, err)

	assert.InDelta(t, 0.0, svc.Revenue(), 1e-9)

	require.NoError(t, svc.CompleteBooking(first.ID))
	require.NoError(t, svc.CancelBooking(second.ID))
	assert.InDelta(t, 2000.0, svc.Revenue(), 1e-9)
}

func TestRemovedHotelOrphansBookings(t *testing.T) {
	svc, hotelStore, _ := setupBookingService(t)

	booking, err := svc.CreateBooking(1, 101, "Jane Doe", "AB123456", "01.06.2025", "05.06.2025")
	require.NoError(t, err)

	require.NoError(t, hotelStore.Remove(1))

	// Запись остаётся, но проверка доступности по исчезнувшему отелю
	// уже невозможна.
	got, err := svc.Get(booking.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive())
	assert.ErrorIs(t, svc.CheckAvailability(1, 101, "10.06.2025", "12.06.2025"), storage.ErrHotelNotFound)
}
