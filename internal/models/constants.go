package models

const (
	StatusActive    = "Active"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

const (
	HotelTypePremium = "Premium"
	HotelTypeBudget  = "Budget"
)

const (
	RoomClassLuxury   = "Luxury"
	RoomClassStandard = "Standard"
	RoomClassEconomy  = "Economy"
)

const (
	AccessLevelAdmin = 1
	AccessLevelUser  = 2
)

const (
	// MinPasswordLength минимальная длина пароля
	MinPasswordLength = 4

	// MaxUsernameLength максимальная длина логина
	MaxUsernameLength = 50

	MinStars = 1
	MaxStars = 5

	MinCapacity = 1
	MaxCapacity = 10

	MinPrice = 0.0
	MaxPrice = 100000.0
)

// DateFormat подсказка формата дат для пользователя. Даты хранятся строками
// в этом виде и сравниваются лексикографически.
const DateFormat = "DD.MM.YYYY"
