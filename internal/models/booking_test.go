package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBooking() Booking {
	b := NewBooking(1, 1, 101, "Иван Петров", "AB123456", "01.06.2025", "05.06.2025")
	b.TotalPrice = 2000
	return b
}

func TestBookingValidate(t *testing.T) {
	b := validBooking()
	require.NoError(t, b.Validate())

	tests := []struct {
		name   string
		mutate func(*Booking)
	}{
		{"zero id", func(b *Booking) { b.ID = 0 }},
		{"zero hotel id", func(b *Booking) { b.HotelID = 0 }},
		{"zero room", func(b *Booking) { b.RoomNumber = 0 }},
		{"empty client", func(b *Booking) { b.ClientName = "" }},
		{"empty passport", func(b *Booking) { b.Passport = "" }},
		{"empty check-in", func(b *Booking) { b.CheckIn = "" }},
		{"check-in equals check-out", func(b *Booking) { b.CheckOut = b.CheckIn }},
		{"check-in after check-out", func(b *Booking) { b.CheckIn, b.CheckOut = b.CheckOut, b.CheckIn }},
		{"negative price", func(b *Booking) { b.TotalPrice = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := validBooking()
			tt.mutate(&bad)
			assert.Error(t, bad.Validate())
		})
	}
}

func TestBookingDateOrderIsLexicographic(t *testing.T) {
	// Порядок дат строковый, не календарный: "02.01.2025" < "15.12.2024".
	b := validBooking()
	b.CheckIn = "02.01.2025"
	b.CheckOut = "15.12.2024"
	assert.NoError(t, b.Validate())
}

func TestBookingNights(t *testing.T) {
	tests := []struct {
		checkIn  string
		checkOut string
		want     int
	}{
		{"01.01.2025", "10.01.2025", 9},
		{"01.06.2025", "05.06.2025", 4},
		{"28.02.2025", "02.03.2025", 4}, // 30-дневные месяцы, не календарь
		{"31.12.2024", "01.01.2025", 5},
	}

	for _, tt := range tests {
		b := Booking{CheckIn: tt.checkIn, CheckOut: tt.checkOut}
		assert.Equal(t, tt.want, b.Nights(), "%s - %s", tt.checkIn, tt.checkOut)
	}
}

func TestBookingOverlaps(t *testing.T) {
	b := validBooking() // 01.06.2025 - 05.06.2025

	assert.True(t, b.Overlaps("03.06.2025", "04.06.2025"), "contained range")
	assert.True(t, b.Overlaps("30.05.2025", "02.06.2025"), "left overlap")
	assert.True(t, b.Overlaps("04.06.2025", "10.06.2025"), "right overlap")
	assert.True(t, b.Overlaps("30.05.2025", "10.06.2025"), "covering range")

	// Соприкасающиеся границы пересечением не считаются.
	assert.False(t, b.Overlaps("28.05.2025", "01.06.2025"), "ends at check-in")
	assert.False(t, b.Overlaps("05.06.2025", "09.06.2025"), "starts at check-out")

	cancelled := validBooking()
	require.NoError(t, cancelled.Cancel())
	assert.False(t, cancelled.Overlaps("03.06.2025", "04.06.2025"), "cancelled booking frees the range")
}

func TestBookingStatusTransitions(t *testing.T) {
	b := validBooking()
	assert.True(t, b.IsActive())

	require.NoError(t, b.Complete())
	assert.Equal(t, StatusCompleted, b.Status)

	// Терминальные статусы не меняются.
	assert.ErrorIs(t, b.Cancel(), ErrTerminalStatus)
	assert.ErrorIs(t, b.Complete(), ErrTerminalStatus)
	assert.Equal(t, StatusCompleted, b.Status)

	c := validBooking()
	require.NoError(t, c.Cancel())
	assert.ErrorIs(t, c.Complete(), ErrTerminalStatus)
	assert.Equal(t, StatusCancelled, c.Status)
}

func TestBookingActivate(t *testing.T) {
	b := validBooking()
	require.NoError(t, b.Cancel())

	// Activate безусловный и возвращает запись в работу из любого статуса.
	b.Activate()
	assert.True(t, b.IsActive())
}
