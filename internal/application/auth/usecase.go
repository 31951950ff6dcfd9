package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/application/ports"
	"github.com/jhoicas/encartes-api/internal/domain"
	"github.com/jhoicas/encartes-api/internal/domain/entity"
	"github.com/jhoicas/encartes-api/internal/domain/repository"
	"github.com/jhoicas/encartes-api/pkg/jwt"
	"github.com/jhoicas/encartes-api/pkg/logger"
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = time.Hour
	tokenBytes           = 32

	msgSignup         = "Usuário criado. Verifique seu email para ativar a conta."
	msgForgotPassword = "Se o email estiver cadastrado, você receberá um link para redefinir sua senha."
	msgPasswordReset  = "Senha alterada com sucesso"
	msgEmailVerified  = "Email verificado com sucesso"
)

var (
	errSignupPasswordMismatch = domain.NewError(domain.ErrConflict, "PASSWORD_MISMATCH", "As senhas não coincidem")
	errResetPasswordMismatch  = domain.NewError(domain.ErrInvalidInput, "PASSWORD_MISMATCH", "As senhas não coincidem")
	errEmailSend              = domain.NewError(domain.ErrInvalidInput, "EMAIL_SEND_ERROR", "Erro ao enviar email. Tente novamente mais tarde.")

	errInvalidResetToken        = domain.NewError(domain.ErrInvalidInput, "INVALID_TOKEN", "Token inválido ou expirado")
	errResetTokenExpired        = domain.NewError(domain.ErrInvalidInput, "TOKEN_EXPIRED", "Token expirado. Solicite um novo link de redefinição de senha.")
	errInvalidVerificationToken = domain.NewError(domain.ErrInvalidInput, "INVALID_TOKEN", "Token de verificação inválido")
	errVerificationTokenExpired = domain.NewError(domain.ErrInvalidInput, "TOKEN_EXPIRED", "Token de verificação expirado. Solicite um novo email de verificação.")
)

// JWTConfig configuración para generación de tokens de acceso y refresh.
type JWTConfig struct {
	Secret           string
	ExpiresIn        time.Duration
	RefreshSecret    string
	RefreshExpiresIn time.Duration
	Issuer           string
}

// AuthUseCase casos de uso de autenticación y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	mailer   ports.Mailer
	storage  ports.FileStorage
	jwtCfg   JWTConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, mailer ports.Mailer, storage ports.FileStorage, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if jwtCfg.RefreshSecret == "" {
		jwtCfg.RefreshSecret = jwtCfg.Secret
	}
	return &AuthUseCase{
		userRepo: userRepo,
		mailer:   mailer,
		storage:  storage,
		jwtCfg:   jwtCfg,
		log:      log,
		now:      time.Now,
	}
}

// Login verifica email/password y emite access + refresh token.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("generar access token: %w", err)
	}
	refresh, err := jwt.Generate(uc.jwtCfg.RefreshSecret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("generar refresh token: %w", err)
	}

	return &dto.LoginResponse{
		User:         toAuthUser(user, true),
		Token:        token,
		RefreshToken: refresh,
		ExpiresIn:    int(uc.jwtCfg.ExpiresIn.Seconds()),
	}, nil
}

// Signup registra un usuario con rol "user" y envía el email de verificación.
// Un fallo de envío se registra en log pero no invalida el registro.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.SignupResponse, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if in.Password != in.ConfirmPassword {
		return nil, errSignupPasswordMismatch
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	token, err := randomToken()
	if err != nil {
		return nil, err
	}
	now := uc.now()
	exp := now.Add(verificationTokenTTL)
	user := &entity.User{
		ID:                     uuid.New().String(),
		Email:                  in.Email,
		PasswordHash:           hash,
		Name:                   in.Name,
		Role:                   entity.RoleUser,
		EmailVerificationToken: &token,
		EmailVerificationExp:   &exp,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}

	if err := uc.mailer.SendEmailVerification(ctx, user.Email, user.Name, token); err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("enviar email de verificación")
	}

	return &dto.SignupResponse{
		User:    toAuthUser(user, false),
		Message: msgSignup,
	}, nil
}

// Refresh valida el refresh token y emite un nuevo access token.
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	claims, err := jwt.Parse(uc.jwtCfg.RefreshSecret, in.RefreshToken)
	if err != nil {
		return nil, domain.ErrInvalidRefreshToken
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidRefreshToken
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("generar access token: %w", err)
	}
	return &dto.RefreshTokenResponse{Token: token, ExpiresIn: int(uc.jwtCfg.ExpiresIn.Seconds())}, nil
}

// ForgotPassword genera un token de redefinición y lo envía por email.
// Siempre responde el mismo mensaje para no revelar qué emails existen.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) (*dto.MessageResponse, error) {
	out := &dto.MessageResponse{Message: msgForgotPassword}

	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return out, nil
	}

	token, err := randomToken()
	if err != nil {
		return nil, err
	}
	exp := uc.now().Add(resetTokenTTL)
	user.PasswordResetToken = &token
	user.PasswordResetExp = &exp
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := uc.mailer.SendPasswordReset(ctx, user.Email, user.Name, token); err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("enviar email de redefinición")
		user.ClearResetToken()
		if uerr := uc.userRepo.Update(ctx, user); uerr != nil {
			return nil, uerr
		}
		return nil, errEmailSend.WithCause(err)
	}
	return out, nil
}

// ResetPassword cambia la contraseña usando el token recibido por email.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) (*dto.MessageResponse, error) {
	if in.Password != in.ConfirmPassword {
		return nil, errResetPasswordMismatch
	}
	user, err := uc.userRepo.GetByResetToken(ctx, in.Token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errInvalidResetToken
	}
	if user.PasswordResetExp == nil || uc.now().After(*user.PasswordResetExp) {
		user.ClearResetToken()
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		return nil, errResetTokenExpired
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.ClearResetToken()
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: msgPasswordReset}, nil
}

// VerifyEmail marca el email como verificado usando el token del email de bienvenida.
func (uc *AuthUseCase) VerifyEmail(ctx context.Context, token string) (*dto.MessageResponse, error) {
	if token == "" {
		return nil, errInvalidVerificationToken
	}
	user, err := uc.userRepo.GetByVerificationToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errInvalidVerificationToken
	}
	if user.EmailVerificationExp == nil || uc.now().After(*user.EmailVerificationExp) {
		return nil, errVerificationTokenExpired
	}
	user.EmailVerified = true
	user.ClearVerificationToken()
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: msgEmailVerified}, nil
}

// GetProfile devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := uc.mustUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

// UpdateProfile aplica solo los campos enviados; establishment se fusiona campo a campo.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := uc.mustUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.CPFCNPJ != nil {
		user.CPFCNPJ = *in.CPFCNPJ
	}
	if in.AvatarURL.Set {
		user.AvatarURL = ""
		if in.AvatarURL.Value != nil {
			user.AvatarURL = *in.AvatarURL.Value
		}
	}
	if in.Establishment != nil {
		var current entity.Establishment
		if user.Establishment != nil {
			current = *user.Establishment
		}
		merged := current.Merge(*in.Establishment)
		user.Establishment = &merged
	}
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

// UploadAvatar guarda la imagen en la carpeta avatars y actualiza el perfil.
func (uc *AuthUseCase) UploadAvatar(ctx context.Context, userID string, file ports.FileUpload) (*dto.AvatarResponse, error) {
	user, err := uc.mustUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	stored, err := uc.storage.Save(ctx, "avatars", file)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = stored.URL
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return &dto.AvatarResponse{AvatarURL: stored.URL}, nil
}

func (uc *AuthUseCase) mustUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// HashPassword genera el hash bcrypt (cost 10) de una contraseña.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func randomToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generar token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func toAuthUser(u *entity.User, withRole bool) dto.AuthUser {
	out := dto.AuthUser{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
	if withRole {
		out.Role = u.Role
	}
	return out
}

func toProfile(u *entity.User) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		Role:          u.Role,
		Phone:         u.Phone,
		CPFCNPJ:       u.CPFCNPJ,
		Establishment: u.Establishment,
		AvatarURL:     u.AvatarURL,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
