package models

import "fmt"

// User учётная запись. Пароль хранится открытым текстом, формат файла
// users.txt этого требует.
type User struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	AccessLevel int    `json:"access_level"`
}

func NewUser(username, password string, accessLevel int) User {
	return User{Username: username, Password: password, AccessLevel: accessLevel}
}

func (u *User) IsAdmin() bool {
	return u.AccessLevel == AccessLevelAdmin
}

func (u *User) VerifyPassword(password string) bool {
	return u.Password == password
}

func (u *User) ValidateUsername() error {
	if u.Username == "" || len(u.Username) > MaxUsernameLength {
		return fmt.Errorf("username must be 1-%d characters", MaxUsernameLength)
	}
	for _, r := range u.Username {
		if !isUsernameRune(r) {
			return fmt.Errorf("username %q contains invalid character %q", u.Username, r)
		}
	}
	return nil
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	}
	return false
}

func (u *User) ValidatePassword() error {
	if len(u.Password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// ChangePassword меняет пароль после проверки старого.
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return fmt.Errorf("old password does not match")
	}
	if len(newPassword) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	u.Password = newPassword
	return nil
}

func (u *User) AccessLevelName() string {
	switch u.AccessLevel {
	case AccessLevelAdmin:
		return "Администратор"
	case AccessLevelUser:
		return "Пользователь"
	default:
		return "Неизвестно"
	}
}
