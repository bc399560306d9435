// Package account validates the login and registration forms. Accounts are
// never stored and no credentials leave the process: a valid form only
// produces a confirmation notice.
package account

import (
	"fmt"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password a registration accepts.
const MinPasswordLength = 6

// Level is the severity of a notice.
type Level string

// Notice levels.
const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a toast shown after a form submission.
type Notice struct {
	Title   string
	Message string
	Icon    string
	Level   Level
}

// ValidationError is a rejected form submission.
type ValidationError struct {
	Notice
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

func invalid(title, message, icon string, level Level) *ValidationError {
	return &ValidationError{Notice: Notice{Title: title, Message: message, Icon: icon, Level: level}}
}

// Login is the login form.
type Login struct {
	Email    string
	Password string
}

// Registration is the registration form.
type Registration struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// ValidateLogin checks that both login fields are filled in.
func ValidateLogin(f Login) error {
	if f.Email == "" || f.Password == "" {
		return invalid("Campos obrigatórios", "Por favor, preencha todos os campos!", "⚠️", LevelWarning)
	}
	return nil
}

// ValidateRegistration checks a registration form. Rules are applied in
// order: every field is required, the confirmation must match, and the
// password must have at least MinPasswordLength characters.
func ValidateRegistration(f Registration) error {
	if f.Name == "" || f.Email == "" || f.Password == "" || f.ConfirmPassword == "" {
		return invalid("Campos obrigatórios", "Por favor, preencha todos os campos obrigatórios!", "⚠️", LevelWarning)
	}
	if f.Password != f.ConfirmPassword {
		return invalid(
			"Erro na confirmação de senha",
			"As senhas digitadas não coincidem. Verifique e tente novamente.",
			"⚠️",
			LevelWarning,
		)
	}
	if utf8.RuneCountInString(f.Password) < MinPasswordLength {
		return invalid(
			"Senha muito curta",
			fmt.Sprintf("A senha deve ter pelo menos %d caracteres para sua segurança.", MinPasswordLength),
			"🔒",
			LevelError,
		)
	}
	return nil
}

// LoggedIn is the notice shown after a valid login.
func LoggedIn() Notice {
	return Notice{
		Title:   "Login realizado com sucesso!",
		Message: "Redirecionando...",
		Icon:    "✅",
		Level:   LevelSuccess,
	}
}

// Registered is the notice shown after a valid registration.
func Registered(name string) Notice {
	return Notice{
		Title:   "Conta criada com sucesso!",
		Message: fmt.Sprintf("Bem-vindo ao SoundWave, %s! Agora você pode fazer login.", name),
		Icon:    "🎉",
		Level:   LevelSuccess,
	}
}

// PasswordRecovery is the notice shown by the forgot-password link.
func PasswordRecovery() Notice {
	return Notice{
		Title:   "Recuperação de senha",
		Message: "Funcionalidade de recuperação de senha será implementada em breve!",
		Icon:    "ℹ️",
		Level:   LevelInfo,
	}
}
