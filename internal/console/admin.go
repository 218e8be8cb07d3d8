package console

import (
	"fmt"

	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

func (c *Console) addHotel() {
	hotelType, err := c.readLine("Тип отеля (Premium/Budget): ")
	if err != nil {
		return
	}
	name, err := c.readLine("Название: ")
	if err != nil {
		return
	}
	city, err := c.readLine("Город: ")
	if err != nil {
		return
	}
	description, err := c.readLine("Описание: ")
	if err != nil {
		return
	}
	stars, err := c.readInt("Количество звёзд: ")
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}

	var hotel *models.Hotel
	switch hotelType {
	case models.HotelTypePremium:
		hotel = models.NewPremiumHotel(0, name, city, description, stars)
		for {
			service, err := c.readLine("Сервис (пусто - закончить): ")
			if err != nil || service == "" {
				break
			}
			hotel.AddService(service)
		}
	case models.HotelTypeBudget:
		hotel = models.NewBudgetHotel(0, name, city, description, stars)
		hotel.FreeWifi = c.readYesNo("Бесплатный WiFi?")
		hotel.FreeParking = c.readYesNo("Бесплатная парковка?")
		hotel.Breakfast = c.readYesNo("Завтрак включён?")
	default:
		fmt.Fprintln(c.out, "Неизвестный тип отеля.")
		return
	}

	if err := c.hotels.AddHotel(hotel); err != nil {
		fmt.Fprintln(c.out, userMessage(err))
		return
	}
	fmt.Fprintf(c.out, "Отель добавлен с ID %d.\n", hotel.ID)
}

func (c *Console) removeHotel(l *zerolog.Logger) {
	id, err := c.readInt("ID отеля: ")
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}

	active := 0
	for _, b := range c.bookings.ByHotel(id) {
		if b.IsActive() {
			active++
		}
	}
	if active > 0 {
		fmt.Fprintf(c.out, "Внимание: у отеля %d активных бронирований, они останутся без отеля.\n", active)
		if !c.readYesNo("Продолжить удаление?") {
			return
		}
	}

	if err := c.hotels.RemoveHotel(id); err != nil {
		l.Warn().Err(err).Int("hotel_id", id).Msg("remove hotel failed")
		fmt.Fprintln(c.out, userMessage(err))
		return
	}
	fmt.Fprintf(c.out, "Отель %d удалён.\n", id)
}

func (c *Console) addRoom() {
	hotelID, err := c.readInt("ID отеля: ")
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	number, err := c.readInt("Номер комнаты: ")
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	class, err := c.readLine("Класс (Luxury/Standard/Economy): ")
	if err != nil {
		return
	}
	capacity, err := c.readInt("Вместимость (1-10): ")
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	price, err := c.readFloat("Цена за ночь: ")
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}

	room := models.NewRoom(number, class, capacity, price)
	if err := c.hotels.AddRoom(hotelID, room); err != nil {
		fmt.Fprintln(c.out, userMessage(err))
		return
	}
	fmt.Fprintf(c.out, "Номер %d добавлен к отелю %d.\n", number, hotelID)
}

func (c *Console) manageUsers() {
	fmt.Fprintln(c.out, "\n=== Управление пользователями ===")
	fmt.Fprintln(c.out, "1. Список пользователей")
	fmt.Fprintln(c.out, "2. Зарегистрировать пользователя")
	fmt.Fprintln(c.out, "3. Удалить пользователя")
	fmt.Fprintln(c.out, "4. Сменить свой пароль")

	choice, err := c.readLine("Выберите опцию: ")
	if err != nil {
		return
	}

	switch choice {
	case "1":
		users := c.accounts.Users()
		fmt.Fprintln(c.out, "\n=== Список пользователей ===")
		for _, u := range users {
			fmt.Fprintf(c.out, "Логин: %s | Уровень доступа: %s\n", u.Username, u.AccessLevelName())
		}
		fmt.Fprintf(c.out, "Всего пользователей: %d\n", len(users))
	case "2":
		username, err := c.readLine("Логин: ")
		if err != nil {
			return
		}
		password, err := c.readLine("Пароль: ")
		if err != nil {
			return
		}
		level := models.AccessLevelUser
		if c.readYesNo("Сделать администратором?") {
			level = models.AccessLevelAdmin
		}
		if err := c.accounts.Register(username, password, level); err != nil {
			fmt.Fprintln(c.out, userMessage(err))
			return
		}
		fmt.Fprintf(c.out, "Пользователь %s зарегистрирован.\n", username)
	case "3":
		username, err := c.readLine("Логин: ")
		if err != nil {
			return
		}
		if err := c.accounts.Delete(username); err != nil {
			fmt.Fprintln(c.out, userMessage(err))
			return
		}
		fmt.Fprintf(c.out, "Пользователь %s удалён.\n", username)
	case "4":
		oldPassword, err := c.readLine("Старый пароль: ")
		if err != nil {
			return
		}
		newPassword, err := c.readLine("Новый пароль: ")
		if err != nil {
			return
		}
		if err := c.accounts.ChangePassword(oldPassword, newPassword); err != nil {
			fmt.Fprintln(c.out, userMessage(err))
			return
		}
		fmt.Fprintln(c.out, "Пароль изменён.")
	default:
		fmt.Fprintln(c.out, "Некорректный выбор.")
	}
}

func (c *Console) showStatistics(l *zerolog.Logger) {
	fmt.Fprintln(c.out, "\n=== Статистика и управление ===")
	fmt.Fprintln(c.out, "1. Общие показатели")
	fmt.Fprintln(c.out, "2. Экспорт бронирований в XLSX")
	fmt.Fprintln(c.out, "3. Резервная копия данных")
	fmt.Fprintln(c.out, "4. Завершить бронирование")
	fmt.Fprintln(c.out, "5. Применить скидку к Budget-отелю")
	fmt.Fprintln(c.out, "6. Изменить доступность номера")

	choice, err := c.readLine("Выберите опцию: ")
	if err != nil {
		return
	}

	switch choice {
	case "1":
		fmt.Fprintf(c.out, "Отелей: %d\n", c.hotels.Count())
		fmt.Fprintf(c.out, "Бронирований: %d\n", c.bookings.Count())
		fmt.Fprintf(c.out, "Активных бронирований: %d\n", len(c.bookings.Active()))
		fmt.Fprintf(c.out, "Выручка по завершённым: %.2f\n", c.bookings.Revenue())
	case "2":
		path, err := c.reporter.ExportBookings(c.bookings.All(), c.bookings.Revenue())
		if err != nil {
			l.Error().Err(err).Msg("export failed")
			fmt.Fprintln(c.out, userMessage(err))
			return
		}
		fmt.Fprintf(c.out, "Экспорт сохранён: %s\n", path)
	case "3":
		if c.backup == nil {
			fmt.Fprintln(c.out, "Резервное копирование не настроено.")
			return
		}
		// перед копированием фиксируем текущее состояние на диске
		c.saveAll()
		if err := c.backup.PerformBackup(); err != nil {
			l.Error().Err(err).Msg("backup failed")
			fmt.Fprintln(c.out, userMessage(err))
			return
		}
		fmt.Fprintln(c.out, "Резервная копия создана.")
	case "4":
		c.completeBooking(l)
	case "5":
		hotelID, err := c.readInt("ID отеля: ")
		if err != nil {
			fmt.Fprintln(c.out, err)
			return
		}
		percent, err := c.readFloat("Скидка в процентах [0-100]: ")
		if err != nil {
			fmt.Fprintln(c.out, err)
			return
		}
		if err := c.hotels.ApplyHotelDiscount(hotelID, percent); err != nil {
			fmt.Fprintln(c.out, userMessage(err))
			return
		}
		fmt.Fprintln(c.out, "Скидка применена ко всем номерам отеля.")
	case "6":
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
		available := c.readYesNo("Пометить свободным?")
		if err := c.hotels.SetRoomAvailability(hotelID, roomNumber, available); err != nil {
			fmt.Fprintln(c.out, userMessage(err))
			return
		}
		fmt.Fprintln(c.out, "Статус номера обновлён.")
	default:
		fmt.Fprintln(c.out, "Некорректный выбор.")
	}
}
