package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"regexp"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"

	"github.com/robsonsvicero/financassimples/internal/domain/shared"
	"github.com/robsonsvicero/financassimples/internal/domain/user"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
	"github.com/robsonsvicero/financassimples/internal/logger"
)

type Login struct {
	Email    string
	Password string
}

type Service struct {
	Repository     user.Repository
	UserService    *user.Service
	CategorySeeder shared.CategorySeeder
	GoogleClientID string
}

func NewService(
	repo user.Repository,
	userSvc *user.Service,
	seeder shared.CategorySeeder,
	googleClientID string,
) *Service {
	return &Service{
		Repository:     repo,
		UserService:    userSvc,
		CategorySeeder: seeder,
		GoogleClientID: googleClientID,
	}
}

func (s *Service) Login(ctx context.Context, login Login) (*user.User, error) {
	entity, err := s.Repository.GetByEmail(ctx, login.Email)
	if err != nil {
		if appErr, ok := appErrors.AsAppError(err); ok && appErr.Code == appErrors.ErrUserNotFound.Code {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := PasswordValidate(login.Password, entity.Password); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) Register(ctx context.Context, newUser *user.User) error {
	exists, err := s.emailExists(ctx, newUser.Email)
	if err != nil {
		return err
	}
	if exists {
		return appErrors.ErrEmailAlreadyExists
	}
	if err := PasswordRequirements(newUser.Password); err != nil {
		return err
	}
	if err := s.UserService.Create(ctx, newUser); err != nil {
		return err
	}

	s.seedDefaults(ctx, newUser)

	return nil
}

// GoogleLogin valida o id_token emitido pelo Google e entra com a conta
// correspondente, cadastrando-a na primeira vez.
func (s *Service) GoogleLogin(ctx context.Context, credential string) (*user.User, error) {
	if s.GoogleClientID == "" {
		return nil, appErrors.NewAuthError("OAUTH_NOT_CONFIGURED", "Login com Google não está configurado")
	}
	if credential == "" {
		return nil, appErrors.NewAuthError("CREDENTIAL_MISSING", "Credencial do Google não fornecida")
	}

	payload, err := idtoken.Validate(ctx, credential, s.GoogleClientID)
	if err != nil {
		return nil, appErrors.NewAuthError("TOKEN_INVALID", "Token do Google inválido").WithError(err)
	}

	email, ok := payload.Claims["email"].(string)
	if !ok || email == "" {
		return nil, appErrors.NewAuthError("EMAIL_MISSING", "Email não encontrado no token")
	}

	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = "Usuário Google"
	}

	entity, err := s.Repository.GetByEmail(ctx, email)
	if err != nil {
		if appErr, ok := appErrors.AsAppError(err); ok && appErr.Code == appErrors.ErrUserNotFound.Code {
			password, err := generateSecurePassword()
			if err != nil {
				return nil, err
			}

			newUser := user.User{
				Name:     name,
				Email:    email,
				Password: password,
			}

			if err := s.UserService.Create(ctx, &newUser); err != nil {
				return nil, err
			}

			s.seedDefaults(ctx, &newUser)

			return &newUser, nil
		}
		return nil, err
	}

	return entity, nil
}

// seedDefaults cria as categorias padrão da conta recém-criada. Falha aqui
// não derruba o cadastro: o usuário pode criar categorias manualmente.
func (s *Service) seedDefaults(ctx context.Context, newUser *user.User) {
	if s.CategorySeeder == nil {
		return
	}
	if err := s.CategorySeeder.EnsureDefaults(ctx, newUser.Id); err != nil {
		logger.Warn().
			Err(err).
			Str("user_id", newUser.Id.String()).
			Msg("Falha ao criar categorias padrão")
	}
}

func (s *Service) emailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.Repository.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	appErr, ok := appErrors.AsAppError(err)
	if !ok {
		return false, appErrors.ErrInternalServer.WithError(err)
	}
	if appErr.Code == appErrors.ErrUserNotFound.Code {
		return false, nil
	}
	return false, appErr
}

func PasswordRequirements(password string) error {
	if len(password) < 8 {
		return appErrors.NewValidationError("password", "deve conter no mínimo 8 caracteres")
	}
	hasUpper, _ := regexp.MatchString(`[A-Z]`, password)
	if !hasUpper {
		return appErrors.NewValidationError("password", "deve conter ao menos uma letra maiúscula")
	}
	hasSpecial, _ := regexp.MatchString(`[@$!%*?&]`, password)
	if !hasSpecial {
		return appErrors.NewValidationError("password", "deve conter ao menos um caractere especial (@$!%*?&)")
	}
	return nil
}

func PasswordValidate(inputPassword string, storedPassword string) error {
	if inputPassword == "" {
		return appErrors.NewValidationError("password", "deve ser informado")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedPassword), []byte(inputPassword)); err != nil {
		return appErrors.ErrInvalidCredentials
	}
	return nil
}

func generateSecurePassword() (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", appErrors.ErrInternalServer.WithError(err)
	}
	// Garante os requisitos mínimos de senha para contas criadas via Google.
	return "G!" + base64.RawURLEncoding.EncodeToString(raw), nil
}
