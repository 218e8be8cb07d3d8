package storage

import "errors"

// Ожидаемые отказы хранилищ. Консоль сопоставляет их с сообщениями для
// пользователя через errors.Is.
var (
	ErrHotelNotFound   = errors.New("hotel not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrNotAvailable    = errors.New("room is not available for the requested dates")
	ErrAdminProtected  = errors.New("the admin account cannot be deleted")
)
