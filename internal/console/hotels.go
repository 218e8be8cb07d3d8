package console

import (
	"fmt"
	"strings"

	"hotelier/internal/models"
)

func (c *Console) showAllHotels() {
	hotels := c.hotels.All()
	if len(hotels) == 0 {
		fmt.Fprintln(c.out, "\nОтелей в каталоге пока нет.")
		return
	}

	fmt.Fprintln(c.out, "\n========== СПИСОК ОТЕЛЕЙ ==========")
	for _, h := range hotels {
		c.printHotel(h)
	}
	fmt.Fprintf(c.out, "\nВсего отелей: %d\n", len(hotels))
}

func (c *Console) printHotel(h *models.Hotel) {
	fmt.Fprintln(c.out, "\n========================================")
	fmt.Fprintf(c.out, "%s HOTEL\n", strings.ToUpper(h.Type))
	fmt.Fprintln(c.out, "========================================")
	fmt.Fprintf(c.out, "ID: %d\n", h.ID)
	fmt.Fprintf(c.out, "Название: %s\n", h.Name)
	fmt.Fprintf(c.out, "Город: %s\n", h.City)
	fmt.Fprintf(c.out, "Описание: %s\n", h.Description)
	fmt.Fprintf(c.out, "Звёзд: %s\n", h.StarsRepresentation())
	fmt.Fprintf(c.out, "Количество номеров: %d\n", h.RoomCount())
	fmt.Fprintf(c.out, "Средняя цена: %.2f/ночь\n", h.AveragePrice())
	fmt.Fprintf(c.out, "Рейтинг: %d/100\n", h.Rating())

	switch h.Type {
	case models.HotelTypePremium:
		if len(h.Services) > 0 {
			fmt.Fprintf(c.out, "Сервисы: %s\n", strings.Join(h.Services, ", "))
		}
	case models.HotelTypeBudget:
		services := h.FreeServices()
		if len(services) == 0 {
			fmt.Fprintln(c.out, "Бесплатные услуги: нет")
		} else {
			fmt.Fprintf(c.out, "Бесплатные услуги: %s\n", strings.Join(services, ", "))
		}
		if h.DiscountPercent > 0 {
			fmt.Fprintf(c.out, "Скидка: %.1f%%\n", h.DiscountPercent)
		}
	}

	for _, room := range h.Rooms {
		fmt.Fprintln(c.out, room.Summary())
	}
}

func (c *Console) searchHotels() {
	fmt.Fprintln(c.out, "\n=== Поиск отелей ===")
	fmt.Fprintln(c.out, "1. По городу")
	fmt.Fprintln(c.out, "2. По типу (Premium/Budget)")
	fmt.Fprintln(c.out, "3. По количеству звёзд")
	fmt.Fprintln(c.out, "4. Поиск свободных номеров")
	fmt.Fprintln(c.out, "5. Сортировка по средней цене")
	fmt.Fprintln(c.out, "6. Сортировка по названию")

	choice, err := c.readLine("Выберите опцию: ")
	if err != nil {
		return
	}

	var results []*models.Hotel
	switch choice {
	case "1":
		city, err := c.readLine("Город: ")
		if err != nil {
			return
		}
		results = c.hotels.ByCity(city)
	case "2":
		hotelType, err := c.readLine("Тип (Premium/Budget): ")
		if err != nil {
			return
		}
		results = c.hotels.ByType(hotelType)
	case "3":
		stars, err := c.readInt("Количество звёзд (1-5): ")
		if err != nil {
			fmt.Fprintln(c.out, err)
			return
		}
		results = c.hotels.ByStars(stars)
	case "4":
		c.searchAvailableRooms()
		return
	case "5":
		results = c.hotels.SortedByAveragePrice()
	case "6":
		results = c.hotels.SortedByName()
	default:
		fmt.Fprintln(c.out, "Некорректный выбор.")
		return
	}

	if len(results) == 0 {
		fmt.Fprintln(c.out, "Отели не найдены.")
		return
	}
	for _, h := range results {
		c.printHotel(h)
	}
}

func (c *Console) searchAvailableRooms() {
	city, err := c.readLine("Город (пусто - любой): ")
	if err != nil {
		return
	}
	roomClass, err := c.readLine("Класс номера (Luxury/Standard/Economy, пусто - любой): ")
	if err != nil {
		return
	}
	minCapacity, err := c.readInt("Минимальная вместимость: ")
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	maxPrice, err := c.readFloat("Максимальная цена за ночь: ")
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}

	results := c.hotels.FindAvailableRooms(city, roomClass, minCapacity, maxPrice)
	if len(results) == 0 {
		fmt.Fprintln(c.out, "Подходящих номеров не найдено.")
		return
	}
	for _, h := range results {
		c.printHotel(h)
	}
}
