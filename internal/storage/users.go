package storage

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

// UserStore владеет учётными записями. Файл построчный, поля разделены
// двоеточием: username:password:accessLevel, без экранирования.
type UserStore struct {
	path      string
	users     []models.User
	protected string
	logger    *zerolog.Logger
}

func NewUserStore(path string, logger *zerolog.Logger) *UserStore {
	return &UserStore{path: path, logger: logger}
}

// Load очищает коллекцию и читает файл. Если файл недоступен или пуст,
// создаётся администратор по умолчанию, иначе системой нельзя было бы
// пользоваться.
func (s *UserStore) Load(defaultAdmin models.User) error {
	// сидовый администратор защищён от удаления под любым логином
	s.protected = defaultAdmin.Username

	file, err := os.Open(s.path)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("users file unavailable, bootstrapping default admin")
		s.bootstrapDefaultAdmin(defaultAdmin)
		return fmt.Errorf("open users file: %w", err)
	}
	defer file.Close()

	s.users = s.users[:0]

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		parts := strings.Split(line, ":")
		if len(parts) < 3 {
			s.logger.Warn().Str("line", line).Msg("skipping malformed user row")
			continue
		}
		accessLevel, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			s.logger.Warn().Err(err).Str("line", line).Msg("skipping user row with bad access level")
			continue
		}

		s.users = append(s.users, models.NewUser(parts[0], parts[1], accessLevel))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read users file: %w", err)
	}

	if len(s.users) == 0 {
		s.bootstrapDefaultAdmin(defaultAdmin)
	}

	s.logger.Info().Int("count", len(s.users)).Msg("users loaded")
	return nil
}

// bootstrapDefaultAdmin добавляет административную учётную запись в пустую
// коллекцию и сразу сохраняет её.
func (s *UserStore) bootstrapDefaultAdmin(admin models.User) {
	if s.Exists(admin.Username) {
		return
	}
	admin.AccessLevel = models.AccessLevelAdmin
	s.users = append(s.users, admin)
	if err := s.Save(); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist default admin")
		return
	}
	s.logger.Info().Str("username", admin.Username).Msg("default admin created")
}

func (s *UserStore) Save() error {
	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("open users file for writing: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, u := range s.users {
		fmt.Fprintf(w, "%s:%s:%d\n", u.Username, u.Password, u.AccessLevel)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write users file: %w", err)
	}
	return nil
}

func (s *UserStore) Find(username string) (models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %q: %w", username, ErrUserNotFound)
}

// Put заменяет запись с тем же логином.
func (s *UserStore) Put(u models.User) error {
	for i := range s.users {
		if s.users[i].Username == u.Username {
			s.users[i] = u
			return nil
		}
	}
	return fmt.Errorf("user %q: %w", u.Username, ErrUserNotFound)
}

func (s *UserStore) Exists(username string) bool {
	for _, u := range s.users {
		if u.Username == username {
			return true
		}
	}
	return false
}

// Register добавляет нового пользователя и сохраняет файл.
func (s *UserStore) Register(u models.User) error {
	if s.Exists(u.Username) {
		return fmt.Errorf("user %q: %w", u.Username, ErrUserExists)
	}
	if err := u.ValidateUsername(); err != nil {
		return err
	}
	if err := u.ValidatePassword(); err != nil {
		return err
	}
	s.users = append(s.users, u)
	return s.Save()
}

// Delete удаляет пользователя. Сидовая административная учётная запись
// защищена от удаления.
func (s *UserStore) Delete(username string) error {
	if username == s.protected {
		return ErrAdminProtected
	}
	for i, u := range s.users {
		if u.Username == username {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return s.Save()
		}
	}
	return fmt.Errorf("user %q: %w", username, ErrUserNotFound)
}

func (s *UserStore) All() []models.User {
	return append([]models.User(nil), s.users...)
}

func (s *UserStore) Count() int {
	return len(s.users)
}
