package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrTerminalStatus возвращается при попытке перевести завершённое или
// отменённое бронирование в другой статус.
var ErrTerminalStatus = errors.New("booking is in a terminal status")

// Booking хранит одну запись бронирования. Ссылки на отель и номер — это
// просто числовые поля, их существование проверяется только при создании.
type Booking struct {
	ID         int     `json:"id"`
	HotelID    int     `json:"hotel_id"`
	RoomNumber int     `json:"room_number"`
	ClientName string  `json:"client_name"`
	Passport   string  `json:"passport"`
	CheckIn    string  `json:"check_in"`
	CheckOut   string  `json:"check_out"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
}

// NewBooking создаёт активное бронирование без рассчитанной стоимости.
func NewBooking(id, hotelID, roomNumber int, clientName, passport, checkIn, checkOut string) Booking {
	return Booking{
		ID:         id,
		HotelID:    hotelID,
		RoomNumber: roomNumber,
		ClientName: clientName,
		Passport:   passport,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     StatusActive,
	}
}

func (b *Booking) Validate() error {
	if b.ID <= 0 || b.HotelID <= 0 || b.RoomNumber <= 0 {
		return fmt.Errorf("booking %d: identifiers must be positive", b.ID)
	}
	if b.ClientName == "" || b.Passport == "" {
		return fmt.Errorf("booking %d: client name and passport are required", b.ID)
	}
	if b.CheckIn == "" || b.CheckOut == "" {
		return fmt.Errorf("booking %d: both dates are required", b.ID)
	}
	// Строковое сравнение дат в формате DD.MM.YYYY. Через границы
	// месяца и года оно не совпадает с календарным порядком, формат
	// данных это поведение фиксирует.
	if b.CheckIn >= b.CheckOut {
		return fmt.Errorf("booking %d: check-in %q is not before check-out %q", b.ID, b.CheckIn, b.CheckOut)
	}
	if b.TotalPrice < 0 {
		return fmt.Errorf("booking %d: total price is negative", b.ID)
	}
	return nil
}

// Nights возвращает приблизительное число ночей: каждая дата сводится к
// year*365 + month*30 + day, результат — разница. Календарно это неточно,
// но сохранённые файлы рассчитаны именно на такую арифметику.
func (b *Booking) Nights() int {
	dayIn, monthIn, yearIn := splitDate(b.CheckIn)
	dayOut, monthOut, yearOut := splitDate(b.CheckOut)

	totalIn := yearIn*365 + monthIn*30 + dayIn
	totalOut := yearOut*365 + monthOut*30 + dayOut

	return totalOut - totalIn
}

// splitDate разбирает строку DD.MM.YYYY, разделителем считается любой
// символ, не являющийся цифрой. Недостающие части остаются нулями.
func splitDate(s string) (day, month, year int) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r)
	})
	if len(parts) > 0 {
		day, _ = strconv.Atoi(parts[0])
	}
	if len(parts) > 1 {
		month, _ = strconv.Atoi(parts[1])
	}
	if len(parts) > 2 {
		year, _ = strconv.Atoi(parts[2])
	}
	return day, month, year
}

// Overlaps сообщает, пересекается ли активное бронирование с диапазоном
// [checkIn, checkOut). Неактивные бронирования не занимают номер. Диапазоны,
// соприкасающиеся границами, пересечением не считаются.
func (b *Booking) Overlaps(checkIn, checkOut string) bool {
	if !b.IsActive() {
		return false
	}
	return !(checkOut <= b.CheckIn || checkIn >= b.CheckOut)
}

func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

func (b *Booking) isTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// Activate принудительно возвращает статус Active.
func (b *Booking) Activate() {
	b.Status = StatusActive
}

// Complete переводит бронирование в терминальный статус Completed.
func (b *Booking) Complete() error {
	if b.isTerminal() {
		return ErrTerminalStatus
	}
	b.Status = StatusCompleted
	return nil
}

// Cancel переводит бронирование в терминальный статус Cancelled.
func (b *Booking) Cancel() error {
	if b.isTerminal() {
		return ErrTerminalStatus
	}
	b.Status = StatusCancelled
	return nil
}

// Summary короткая строка для списков в консоли.
func (b *Booking) Summary() string {
	return fmt.Sprintf("Бронирование #%d | Отель: %d | Номер: %d | Клиент: %s | %s - %s | Статус: %s",
		b.ID, b.HotelID, b.RoomNumber, b.ClientName, b.CheckIn, b.CheckOut, b.Status)
}
