package console

import (
	"fmt"

	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

func (c *Console) showAllBookings() {
	bookings := c.bookings.All()
	if len(bookings) == 0 {
		fmt.Fprintln(c.out, "\nБронирований пока нет.")
		return
	}

	fmt.Fprintln(c.out, "\n========== СПИСОК БРОНИРОВАНИЙ ==========")
	for _, b := range bookings {
		c.printBooking(b)
	}
	fmt.Fprintf(c.out, "\nВсего бронирований: %d\n", len(bookings))
}

func (c *Console) printBooking(b models.Booking) {
	fmt.Fprintf(c.out, "\n=== Бронирование #%d ===\n", b.ID)
	fmt.Fprintf(c.out, "Отель ID: %d\n", b.HotelID)
	fmt.Fprintf(c.out, "Номер: %d\n", b.RoomNumber)
	fmt.Fprintf(c.out, "Клиент: %s\n", b.ClientName)
	fmt.Fprintf(c.out, "Паспорт: %s\n", b.Passport)
	fmt.Fprintf(c.out, "Заезд: %s\n", b.CheckIn)
	fmt.Fprintf(c.out, "Выезд: %s\n", b.CheckOut)
	fmt.Fprintf(c.out, "Статус: %s\n", b.Status)
	fmt.Fprintf(c.out, "Стоимость: %.2f\n", b.TotalPrice)
	fmt.Fprintf(c.out, "Количество ночей: %d\n", b.Nights())
	fmt.Fprintln(c.out, "----------------------------------------")
}

func (c *Console) createBooking(l *zerolog.Logger) {
	hotelID, err := c.readInt("ID отеля: ")
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	roomNumber, err := c.readInt("Номер комнаты: ")
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	clientName, err := c.readLine("Имя клиента: ")
	if err != nil {
		return
	}
	passport, err := c.readLine("Паспорт: ")
	if err != nil {
		return
	}
	checkIn, err := c.readLine("Дата заезда (ДД.ММ.ГГГГ): ")
	if err != nil {
		return
	}
	checkOut, err := c.readLine("Дата выезда (ДД.ММ.ГГГГ): ")
	if err != nil {
		return
	}

	booking, err := c.bookings.CreateBooking(hotelID, roomNumber, clientName, passport, checkIn, checkOut)
	if err != nil {
		l.Warn().Err(err).Msg("create booking failed")
		fmt.Fprintln(c.out, userMessage(err))
		return
	}

	fmt.Fprintf(c.out, "Бронирование #%d создано. Ночей: %d, стоимость: %.2f\n",
		booking.ID, booking.Nights(), booking.TotalPrice)
}

func (c *Console) cancelBooking(l *zerolog.Logger) {
	id, err := c.readInt("ID бронирования: ")
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}

	if err := c.bookings.CancelBooking(id); err != nil {
		l.Warn().Err(err).Int("booking_id", id).Msg("cancel booking failed")
		fmt.Fprintln(c.out, userMessage(err))
		return
	}
	fmt.Fprintf(c.out, "Бронирование #%d отменено.\n", id)
}

func (c *Console) completeBooking(l *zerolog.Logger) {
	id, err := c.readInt("ID бронирования: ")
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}

	if err := c.bookings.CompleteBooking(id); err != nil {
		l.Warn().Err(err).Int("booking_id", id).Msg("complete booking failed")
		fmt.Fprintln(c.out, userMessage(err))
		return
	}
	fmt.Fprintf(c.out, "Бронирование #%d завершено.\n", id)
}

func (c *Console) searchBookings() {
	fmt.Fprintln(c.out, "\n=== Поиск бронирований ===")
	fmt.Fprintln(c.out, "1. По имени клиента")
	fmt.Fprintln(c.out, "2. По паспорту")
	fmt.Fprintln(c.out, "3. По отелю")
	fmt.Fprintln(c.out, "4. По статусу")
	fmt.Fprintln(c.out, "5. По дате заезда (диапазон)")
	fmt.Fprintln(c.out, "6. Сортировка по дате заезда")
	fmt.Fprintln(c.out, "7. Сортировка по стоимости")

	choice, err := c.readLine("Выберите опцию: ")
	if err != nil {
		return
	}

	var results []models.Booking
	switch choice {
	case "1":
		name, err := c.readLine("Имя клиента: ")
		if err != nil {
			return
		}
		results = c.bookings.ByClient(name)
	case "2":
		passport, err := c.readLine("Паспорт: ")
		if err != nil {
			return
		}
		results = c.bookings.ByPassport(passport)
	case "3":
		hotelID, err := c.readInt("ID отеля: ")
		if err != nil {
			fmt.Fprintln(c.out, err)
			return
		}
		results = c.bookings.ByHotel(hotelID)
	case "4":
		status, err := c.readLine("Статус (Active/Completed/Cancelled): ")
		if err != nil {
			return
		}
		results = c.bookings.ByStatus(status)
	case "5":
		start, err := c.readLine("Начало диапазона (ДД.ММ.ГГГГ): ")
		if err != nil {
			return
		}
		end, err := c.readLine("Конец диапазона (ДД.ММ.ГГГГ): ")
		if err != nil {
			return
		}
		results = c.bookings.ByCheckInRange(start, end)
	case "6":
		results = c.bookings.SortedByCheckIn()
	case "7":
		results = c.bookings.SortedByPrice()
	default:
		fmt.Fprintln(c.out, "Некорректный выбор.")
		return
	}

	if len(results) == 0 {
		fmt.Fprintln(c.out, "Бронирования не найдены.")
		return
	}
	for _, b := range results {
		fmt.Fprintln(c.out, b.Summary())
	}
	fmt.Fprintf(c.out, "Найдено: %d\n", len(results))
}
