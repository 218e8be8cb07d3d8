package models

import "fmt"

// Room номер в отеле. Номер комнаты уникален в пределах отеля.
type Room struct {
	Number        int     `json:"number"`
	Class         string  `json:"class"`
	Capacity      int     `json:"capacity"`
	PricePerNight float64 `json:"price_per_night"`
	Available     bool    `json:"available"`
}

func NewRoom(number int, class string, capacity int, pricePerNight float64) Room {
	return Room{
		Number:        number,
		Class:         class,
		Capacity:      capacity,
		PricePerNight: pricePerNight,
		Available:     true,
	}
}

func (r *Room) Validate() error {
	if r.Number <= 0 {
		return fmt.Errorf("room %d: number must be positive", r.Number)
	}
	if r.Capacity < MinCapacity || r.Capacity > MaxCapacity {
		return fmt.Errorf("room %d: capacity %d out of range [%d,%d]", r.Number, r.Capacity, MinCapacity, MaxCapacity)
	}
	if r.PricePerNight < MinPrice || r.PricePerNight > MaxPrice {
		return fmt.Errorf("room %d: price %.2f out of range [%.0f,%.0f]", r.Number, r.PricePerNight, MinPrice, MaxPrice)
	}
	if r.Class != RoomClassLuxury && r.Class != RoomClassStandard && r.Class != RoomClassEconomy {
		return fmt.Errorf("room %d: unknown class %q", r.Number, r.Class)
	}
	return nil
}

// TotalPrice стоимость проживания за указанное число ночей.
func (r *Room) TotalPrice(nights int) float64 {
	if nights <= 0 {
		return 0
	}
	return r.PricePerNight * float64(nights)
}

// ApplyDiscount безвозвратно уменьшает цену за ночь. Исходная цена не
// сохраняется.
func (r *Room) ApplyDiscount(percent float64) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("discount %.1f%% out of range [0,100]", percent)
	}
	r.PricePerNight = r.PricePerNight * (1 - percent/100)
	return nil
}

func (r *Room) Book() {
	r.Available = false
}

func (r *Room) Release() {
	r.Available = true
}

func (r *Room) CheaperThan(other Room) bool {
	return r.PricePerNight < other.PricePerNight
}

func (r *Room) Summary() string {
	status := "занят"
	if r.Available {
		status = "свободен"
	}
	return fmt.Sprintf("Номер %d (%s, мест: %d) - %.2f/ночь [%s]", r.Number, r.Class, r.Capacity, r.PricePerNight, status)
}
