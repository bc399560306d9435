package account

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name    string
		form    Login
		wantErr bool
	}{
		{name: "valid", form: Login{Email: "a@b.c", Password: "x"}},
		{name: "missing email", form: Login{Password: "x"}, wantErr: true},
		{name: "missing password", form: Login{Email: "a@b.c"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLogin(tt.form)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "Por favor, preencha todos os campos!", verr.Message)
		})
	}
}

func TestValidateRegistration(t *testing.T) {
	full := Registration{Name: "Ana", Email: "ana@example.com", Password: "secret1", ConfirmPassword: "secret1"}

	tests := []struct {
		name      string
		mutate    func(*Registration)
		wantTitle string
		wantLevel Level
	}{
		{name: "valid", mutate: func(*Registration) {}},
		{
			name:      "missing name",
			mutate:    func(r *Registration) { r.Name = "" },
			wantTitle: "Campos obrigatórios",
			wantLevel: LevelWarning,
		},
		{
			name:      "mismatch",
			mutate:    func(r *Registration) { r.ConfirmPassword = "secret2" },
			wantTitle: "Erro na confirmação de senha",
			wantLevel: LevelWarning,
		},
		{
			name:      "too short",
			mutate:    func(r *Registration) { r.Password, r.ConfirmPassword = "abc", "abc" },
			wantTitle: "Senha muito curta",
			wantLevel: LevelError,
		},
		{
			name:      "mismatch wins over length",
			mutate:    func(r *Registration) { r.Password, r.ConfirmPassword = "abc", "abd" },
			wantTitle: "Erro na confirmação de senha",
			wantLevel: LevelWarning,
		},
		{
			name:   "six multibyte characters",
			mutate: func(r *Registration) { r.Password, r.ConfirmPassword = "çãõéíú", "çãõéíú" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := full
			tt.mutate(&form)

			err := ValidateRegistration(form)
			if tt.wantTitle == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantTitle, verr.Title)
			assert.Equal(t, tt.wantLevel, verr.Level)
		})
	}
}

func TestShortPasswordMessage(t *testing.T) {
	err := ValidateRegistration(Registration{Name: "a", Email: "b", Password: "12345", ConfirmPassword: "12345"})

	assert.EqualError(t, err, "Senha muito curta: A senha deve ter pelo menos 6 caracteres para sua segurança.")
}

func TestRegistered(t *testing.T) {
	n := Registered("Ana")

	assert.Equal(t, "Conta criada com sucesso!", n.Title)
	assert.Equal(t, "Bem-vindo ao SoundWave, Ana! Agora você pode fazer login.", n.Message)
	assert.Equal(t, LevelSuccess, n.Level)
}
