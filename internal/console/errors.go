package console

import (
	"errors"

	"hotelier/internal/models"
	"hotelier/internal/service"
	"hotelier/internal/storage"
)

// userMessage переводит ожидаемые отказы сервисов в сообщения для
// пользователя.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, storage.ErrNotAvailable):
		return "Номер недоступен на указанные даты. Выберите другие даты или другой номер."
	case errors.Is(err, storage.ErrHotelNotFound):
		return "Отель не найден."
	case errors.Is(err, storage.ErrRoomNotFound):
		return "Номер не найден."
	case errors.Is(err, storage.ErrBookingNotFound):
		return "Бронирование не найдено."
	case errors.Is(err, storage.ErrUserNotFound):
		return "Пользователь не найден."
	case errors.Is(err, storage.ErrUserExists):
		return "Пользователь с таким логином уже существует."
	case errors.Is(err, storage.ErrAdminProtected):
		return "Нельзя удалить администратора."
	case errors.Is(err, models.ErrTerminalStatus):
		return "Бронирование уже завершено или отменено, статус изменить нельзя."
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Неверный логин или пароль."
	}

	return "Операция не выполнена: " + err.Error()
}
