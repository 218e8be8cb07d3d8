package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"hotelier/internal/config"
	"hotelier/internal/export"
	"hotelier/internal/models"
	"hotelier/internal/service"
	"hotelier/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// ErrLoginExhausted возвращается из Run, когда исчерпаны попытки входа.
// Точка входа превращает его в код выхода 1.
var ErrLoginExhausted = errors.New("login attempts exhausted")

// Console последовательно обрабатывает команды единственного пользователя.
// Все изменения хранилищ проходят через этот цикл, поэтому операции никогда
// не выполняются одновременно.
type Console struct {
	in       *bufio.Reader
	out      io.Writer
	bookings *service.BookingService
	hotels   *service.HotelService
	accounts *service.AccountService
	reporter *export.Reporter
	backup   *storage.BackupService
	cfg      *config.Config
	logger   *zerolog.Logger

	loginLimiter *rate.Limiter
}

func New(
	in io.Reader,
	out io.Writer,
	bookings *service.BookingService,
	hotels *service.HotelService,
	accounts *service.AccountService,
	reporter *export.Reporter,
	backup *storage.BackupService,
	cfg *config.Config,
	logger *zerolog.Logger,
) *Console {
	return &Console{
		in:           bufio.NewReader(in),
		out:          out,
		bookings:     bookings,
		hotels:       hotels,
		accounts:     accounts,
		reporter:     reporter,
		backup:       backup,
		cfg:          cfg,
		logger:       logger,
		loginLimiter: rate.NewLimiter(rate.Limit(cfg.Auth.FailedLoginRPS), cfg.Auth.FailedLoginBurst),
	}
}

// Run проводит пользователя через вход и крутит главное меню до команды
// выхода. При выходе все три хранилища сохраняются последний раз.
func (c *Console) Run(ctx context.Context) error {
	if err := c.login(ctx); err != nil {
		return err
	}

	user, _ := c.accounts.CurrentUser()
	fmt.Fprintf(c.out, "\nДобро пожаловать, %s (%s)!\n", user.Username, user.AccessLevelName())

	for {
		select {
		case <-ctx.Done():
			c.saveAll()
			return ctx.Err()
		default:
		}

		c.printMainMenu()
		choice, err := c.readLine("Ваш выбор: ")
		if err != nil {
			// конец ввода равносилен команде выхода
			c.saveAll()
			return nil
		}

		if choice == "0" {
			c.saveAll()
			c.accounts.Logout()
			fmt.Fprintln(c.out, "До свидания!")
			return nil
		}

		c.dispatch(choice)
	}
}

// login даёт ограниченное число попыток входа, притормаживая повторы после
// неудачи.
func (c *Console) login(ctx context.Context) error {
	fmt.Fprintln(c.out, "=== Вход в систему бронирования отелей ===")

	for attempt := 1; attempt <= c.cfg.Auth.MaxLoginAttempts; attempt++ {
		username, err := c.readLine("Логин: ")
		if err != nil {
			return ErrLoginExhausted
		}
		password, err := c.readLine("Пароль: ")
		if err != nil {
			return ErrLoginExhausted
		}

		if err := c.accounts.Login(username, password); err == nil {
			return nil
		}

		fmt.Fprintf(c.out, "Неверный логин или пароль! Осталось попыток: %d\n", c.cfg.Auth.MaxLoginAttempts-attempt)

		// пауза между неудачными попытками, чтобы перебор не был бесплатным
		reservation := c.loginLimiter.Reserve()
		if delay := reservation.Delay(); delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	c.logger.Warn().Msg("login attempts exhausted")
	return ErrLoginExhausted
}

// dispatch выполняет один пункт меню. Каждая команда получает собственный
// request_id в журнале, а паника внутри обработчика не роняет сессию.
func (c *Console) dispatch(choice string) {
	l := c.logger.With().Str("request_id", uuid.New().String()).Str("choice", choice).Logger()

	defer func() {
		if r := recover(); r != nil {
			l.Error().Interface("panic", r).Msg("command handler panicked")
			fmt.Fprintln(c.out, "Произошла непредвиденная ошибка, операция прервана.")
		}
	}()

	switch choice {
	case "1":
		c.showAllHotels()
	case "2":
		c.searchHotels()
	case "3":
		c.showAllBookings()
	case "4":
		c.createBooking(&l)
	case "5":
		c.cancelBooking(&l)
	case "6":
		c.searchBookings()
	case "7":
		c.adminOnly(c.addHotel)
	case "8":
		c.adminOnly(func() { c.removeHotel(&l) })
	case "9":
		c.adminOnly(c.addRoom)
	case "10":
		c.adminOnly(c.manageUsers)
	case "11":
		c.adminOnly(func() { c.showStatistics(&l) })
	case "12":
		c.printHelp()
	default:
		fmt.Fprintln(c.out, "Некорректный выбор, попробуйте ещё раз.")
	}
}

func (c *Console) adminOnly(handler func()) {
	if !c.accounts.IsCurrentAdmin() {
		fmt.Fprintln(c.out, "Доступ запрещён: требуется уровень администратора.")
		return
	}
	handler()
}

// saveAll сохраняет все три хранилища. Ошибки попадают в журнал, сессию
// они не прерывают.
func (c *Console) saveAll() {
	if err := c.bookings.Save(); err != nil {
		c.logger.Error().Err(err).Msg("failed to save bookings")
	}
	if err := c.hotels.Save(); err != nil {
		c.logger.Error().Err(err).Msg("failed to save hotels")
	}
	if err := c.accounts.Save(); err != nil {
		c.logger.Error().Err(err).Msg("failed to save users")
	}
}

func (c *Console) printMainMenu() {
	isAdmin := c.accounts.IsCurrentAdmin()

	fmt.Fprintln(c.out, "\n==========================================")
	fmt.Fprintln(c.out, "     СИСТЕМА БРОНИРОВАНИЯ ОТЕЛЕЙ")
	fmt.Fprintln(c.out, "==========================================")
	fmt.Fprintln(c.out, "1.  Просмотреть все отели")
	fmt.Fprintln(c.out, "2.  Поиск отелей")
	fmt.Fprintln(c.out, "3.  Просмотреть бронирования")
	fmt.Fprintln(c.out, "4.  Создать бронирование")
	fmt.Fprintln(c.out, "5.  Отменить бронирование")
	fmt.Fprintln(c.out, "6.  Поиск бронирований")

	if isAdmin {
		fmt.Fprintln(c.out, "\n--- Административные функции ---")
		fmt.Fprintln(c.out, "7.  Добавить отель")
		fmt.Fprintln(c.out, "8.  Удалить отель")
		fmt.Fprintln(c.out, "9.  Добавить номер к отелю")
		fmt.Fprintln(c.out, "10. Управление пользователями")
		fmt.Fprintln(c.out, "11. Статистика и управление")
	}

	fmt.Fprintln(c.out, "\n12. Инструкция пользователя")
	fmt.Fprintln(c.out, "0.  Выход")
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, "\n=== Инструкция пользователя ===")
	fmt.Fprintln(c.out, "Система управляет каталогом отелей и бронированием номеров.")
	fmt.Fprintf(c.out, "- Даты вводятся в формате %s (например: 25.12.2025)\n", models.DateFormat)
	fmt.Fprintln(c.out, "- Паспорт: 2 буквы и 6 цифр (например: AB123456)")
	fmt.Fprintln(c.out, "- Все поля обязательны для заполнения")
	fmt.Fprintln(c.out, "Административные функции доступны только администратору.")
}
