package authenticating_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/crm-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/crm-analytics-api/internal/config"
	"github.com/vfg2006/crm-analytics-api/internal/domain"
	"github.com/vfg2006/crm-analytics-api/internal/usecases/authenticating"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{SecretKey: "segredo-de-teste"}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestService_LoginUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	service := authenticating.NewService(userRepo, testConfig())

	passwordHash := hashPassword(t, "Senha@Forte1")

	tests := []struct {
		name     string
		email    string
		password string
		setup    func()
		wantErr  error
	}{
		{
			name:     "Login com credenciais válidas gera token",
			email:    "Admin@Empresa.com",
			password: "Senha@Forte1",
			setup: func() {
				// O email é normalizado antes da consulta
				userRepo.EXPECT().
					GetUserByEmail("admin@empresa.com").
					Return(&domain.User{ID: 1, Email: "admin@empresa.com", Active: true, PasswordHash: passwordHash}, nil)
			},
		},
		{
			name:     "Usuário inexistente retorna erro",
			email:    "ninguem@empresa.com",
			password: "Senha@Forte1",
			setup: func() {
				userRepo.EXPECT().GetUserByEmail("ninguem@empresa.com").Return(nil, nil)
			},
			wantErr: authenticating.ErrUserNotFound,
		},
		{
			name:     "Conta desativada retorna erro",
			email:    "inativo@empresa.com",
			password: "Senha@Forte1",
			setup: func() {
				userRepo.EXPECT().
					GetUserByEmail("inativo@empresa.com").
					Return(&domain.User{ID: 2, Active: false, PasswordHash: passwordHash}, nil)
			},
			wantErr: authenticating.ErrUserDisabled,
		},
		{
			name:     "Senha incorreta retorna erro",
			email:    "admin@empresa.com",
			password: "senha-errada",
			setup: func() {
				userRepo.EXPECT().
					GetUserByEmail("admin@empresa.com").
					Return(&domain.User{ID: 1, Active: true, PasswordHash: passwordHash}, nil)
			},
			wantErr: authenticating.ErrInvalidCredentials,
		},
		{
			name:     "Email vazio falha antes de consultar o banco",
			email:    "",
			password: "Senha@Forte1",
			setup:    func() {},
			wantErr:  authenticating.ErrMissingRequiredData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			token, err := service.LoginUser(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
			}
		})
	}
}

func TestService_LoginEValidacaoDeToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	service := authenticating.NewService(userRepo, testConfig())

	passwordHash := hashPassword(t, "Senha@Forte1")

	userRepo.EXPECT().
		GetUserByEmail("admin@empresa.com").
		Return(&domain.User{ID: 7, Name: "Ana", Email: "admin@empresa.com", Active: true, RoleID: 1, PasswordHash: passwordHash}, nil)

	token, err := service.LoginUser("admin@empresa.com", "Senha@Forte1")
	assert.NoError(t, err)

	claims, err := service.ValidateToken(token)

	assert.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "Ana", claims.UserName)
	assert.Equal(t, 1, claims.UserRoleID)
}

func TestService_ValidateToken_TokenInvalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	service := authenticating.NewService(userRepo, testConfig())

	claims, err := service.ValidateToken("não é um token")

	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestService_CreateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	service := authenticating.NewService(userRepo, testConfig())

	t.Run("Cria usuário com senha criptografada e inativo por padrão", func(t *testing.T) {
		userRepo.EXPECT().GetUserByEmail("novo@empresa.com").Return(nil, nil)
		userRepo.EXPECT().
			CreateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) (*domain.User, error) {
				assert.NotEqual(t, "Senha@Forte1", user.PasswordHash)
				assert.False(t, user.Active)
				assert.Equal(t, 3, user.RoleID)
				user.ID = 10
				return user, nil
			})

		user, err := service.CreateUser(&domain.User{
			Name:         "Novo",
			Lastname:     "Usuário",
			Email:        "Novo@Empresa.com",
			PasswordHash: "Senha@Forte1",
		})

		assert.NoError(t, err)
		assert.Equal(t, 10, user.ID)
		assert.Equal(t, "novo@empresa.com", user.Email)
	})

	t.Run("Email já cadastrado retorna erro", func(t *testing.T) {
		userRepo.EXPECT().
			GetUserByEmail("existente@empresa.com").
			Return(&domain.User{ID: 1}, nil)

		user, err := service.CreateUser(&domain.User{
			Name:         "Alguém",
			Lastname:     "Repetido",
			Email:        "existente@empresa.com",
			PasswordHash: "Senha@Forte1",
		})

		assert.ErrorIs(t, err, authenticating.ErrUserAlreadyExists)
		assert.Nil(t, user)
	})

	t.Run("Dados obrigatórios ausentes retornam erro", func(t *testing.T) {
		user, err := service.CreateUser(&domain.User{Email: "so-email@empresa.com"})

		assert.ErrorIs(t, err, authenticating.ErrMissingRequiredData)
		assert.Nil(t, user)
	})
}

func TestService_ValidatePasswordStrength(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	service := authenticating.NewService(userRepo, testConfig())

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "Senha forte passa na validação", password: "Senha@Forte1", valid: true},
		{name: "Senha curta é rejeitada", password: "Ab1@", valid: false},
		{name: "Sem maiúscula é rejeitada", password: "senha@forte1", valid: false},
		{name: "Sem minúscula é rejeitada", password: "SENHA@FORTE1", valid: false},
		{name: "Sem número é rejeitada", password: "Senha@Forte", valid: false},
		{name: "Sem caractere especial é rejeitada", password: "SenhaForte1", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)

			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	service := authenticating.NewService(userRepo, testConfig())

	currentHash := hashPassword(t, "Senha@Antiga1")

	t.Run("Troca de senha com senha atual correta", func(t *testing.T) {
		userRepo.EXPECT().
			GetUserByID(1).
			Return(&domain.User{ID: 1, PasswordHash: currentHash}, nil)
		userRepo.EXPECT().UpdateUser(gomock.Any()).Return(nil)

		err := service.ChangePassword(1, "Senha@Antiga1", "Senha@Nova22")

		assert.NoError(t, err)
	})

	t.Run("Senha atual incorreta é rejeitada", func(t *testing.T) {
		userRepo.EXPECT().
			GetUserByID(1).
			Return(&domain.User{ID: 1, PasswordHash: currentHash}, nil)

		err := service.ChangePassword(1, "senha-errada", "Senha@Nova22")

		assert.ErrorIs(t, err, authenticating.ErrPasswordMismatch)
	})

	t.Run("Nova senha fraca é rejeitada", func(t *testing.T) {
		userRepo.EXPECT().
			GetUserByID(1).
			Return(&domain.User{ID: 1, PasswordHash: currentHash}, nil)

		err := service.ChangePassword(1, "Senha@Antiga1", "fraca")

		assert.Error(t, err)
	})
}
