package service

import (
	"errors"
	"fmt"

	"hotelier/internal/events"
	"hotelier/internal/metrics"
	"hotelier/internal/models"
	"hotelier/internal/storage"

	"github.com/rs/zerolog"
)

// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
// Пользователю не сообщается, что именно не совпало.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrNotAuthenticated возвращается операциями, требующими активной сессии.
var ErrNotAuthenticated = errors.New("no authenticated session")

// AccountService управляет учётными записями и единственной активной
// сессией. Сессия хранится как логин, а не указатель на запись.
type AccountService struct {
	users   *storage.UserStore
	bus     *events.Bus
	logger  *zerolog.Logger
	current string
}

func NewAccountService(users *storage.UserStore, bus *events.Bus, logger *zerolog.Logger) *AccountService {
	return &AccountService{
		users:  users,
		bus:    bus,
		logger: logger,
	}
}

// Login проверяет пароль и открывает сессию. Предыдущая сессия, если была,
// замещается.
func (s *AccountService) Login(username, password string) error {
	user, err := s.users.Find(username)
	if err != nil || !user.VerifyPassword(password) {
		metrics.IncLogin("failure")
		s.logger.Warn().Str("username", username).Msg("login failed")
		return ErrInvalidCredentials
	}

	s.current = user.Username
	metrics.IncLogin("success")
	s.logger.Info().Str("username", username).Msg("login successful")
	return nil
}

func (s *AccountService) Logout() {
	if s.current != "" {
		s.logger.Info().Str("username", s.current).Msg("logout")
	}
	s.current = ""
}

// CurrentUser возвращает копию записи активной сессии.
func (s *AccountService) CurrentUser() (models.User, bool) {
	if s.current == "" {
		return models.User{}, false
	}
	user, err := s.users.Find(s.current)
	if err != nil {
		// учётную запись удалили из-под сессии
		s.current = ""
		return models.User{}, false
	}
	return user, true
}

// CurrentUsername возвращает логин активной сессии или пустую строку.
func (s *AccountService) CurrentUsername() string {
	return s.current
}

func (s *AccountService) IsCurrentAdmin() bool {
	user, ok := s.CurrentUser()
	return ok && user.IsAdmin()
}

// Register создаёт нового пользователя.
func (s *AccountService) Register(username, password string, accessLevel int) error {
	user := models.NewUser(username, password, accessLevel)
	if err := s.users.Register(user); err != nil {
		return err
	}

	if s.bus != nil {
		_ = s.bus.PublishJSON(events.EventUserRegistered, map[string]string{"username": username})
	}
	s.logger.Info().Str("username", username).Int("access_level", accessLevel).Msg("user registered")
	return nil
}

// Delete удаляет учётную запись. Если удаляется пользователь активной
// сессии, сессия закрывается.
func (s *AccountService) Delete(username string) error {
	if err := s.users.Delete(username); err != nil {
		return err
	}
	if s.current == username {
		s.current = ""
	}
	s.logger.Info().Str("username", username).Msg("user deleted")
	return nil
}

// ChangePassword меняет пароль пользователя активной сессии.
func (s *AccountService) ChangePassword(oldPassword, newPassword string) error {
	user, ok := s.CurrentUser()
	if !ok {
		return ErrNotAuthenticated
	}
	if err := user.ChangePassword(oldPassword, newPassword); err != nil {
		return fmt.Errorf("change password for %q: %w", user.Username, err)
	}
	if err := s.users.Put(user); err != nil {
		return err
	}
	return s.users.Save()
}

func (s *AccountService) Users() []models.User {
	return s.users.All()
}

func (s *AccountService) Save() error {
	return s.users.Save()
}
