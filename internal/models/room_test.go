package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomValidate(t *testing.T) {
	room := NewRoom(101, RoomClassStandard, 2, 500)
	require.NoError(t, room.Validate())
	assert.True(t, room.Available)

	tests := []struct {
		name   string
		mutate func(*Room)
	}{
		{"zero number", func(r *Room) { r.Number = 0 }},
		{"capacity below range", func(r *Room) { r.Capacity = 0 }},
		{"capacity above range", func(r *Room) { r.Capacity = 11 }},
		{"negative price", func(r *Room) { r.PricePerNight = -1 }},
		{"price above range", func(r *Room) { r.PricePerNight = 100001 }},
		{"unknown class", func(r *Room) { r.Class = "Presidential" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := NewRoom(101, RoomClassStandard, 2, 500)
			tt.mutate(&bad)
			assert.Error(t, bad.Validate())
		})
	}
}

func TestRoomTotalPrice(t *testing.T) {
	room := NewRoom(101, RoomClassStandard, 2, 500)

	assert.Equal(t, 2000.0, room.TotalPrice(4))
	assert.Equal(t, 0.0, room.TotalPrice(0))
	assert.Equal(t, 0.0, room.TotalPrice(-3))
}

func TestRoomApplyDiscount(t *testing.T) {
	room := NewRoom(101, RoomClassStandard, 2, 100)

	require.NoError(t, room.ApplyDiscount(10))
	assert.InDelta(t, 90.0, room.PricePerNight, 1e-9)

	// Скидка применяется к уже сниженной цене.
	require.NoError(t, room.ApplyDiscount(10))
	assert.InDelta(t, 81.0, room.PricePerNight, 1e-9)

	assert.Error(t, room.ApplyDiscount(150))
	assert.Error(t, room.ApplyDiscount(-5))
	assert.InDelta(t, 81.0, room.PricePerNight, 1e-9, "rejected discount leaves price untouched")
}

func TestRoomCheaperThan(t *testing.T) {
	cheap := NewRoom(1, RoomClassEconomy, 1, 200)
	expensive := NewRoom(2, RoomClassLuxury, 2, 5000)

	assert.True(t, cheap.CheaperThan(expensive))
	assert.False(t, expensive.CheaperThan(cheap))
	assert.False(t, cheap.CheaperThan(cheap), "comparison is strict")
}

func TestRoomBookRelease(t *testing.T) {
	room := NewRoom(101, RoomClassEconomy, 1, 200)

	room.Book()
	assert.False(t, room.Available)
	room.Release()
	assert.True(t, room.Available)
}
