package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/martinmorag/manejo-de-empresas/internal/config"
	"github.com/martinmorag/manejo-de-empresas/internal/dto"
	"github.com/martinmorag/manejo-de-empresas/internal/model"
	"github.com/martinmorag/manejo-de-empresas/internal/repository"
	"github.com/martinmorag/manejo-de-empresas/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	// Login authenticates the credentials and, on success, returns a signed
	// token pair. clientIP is recorded on failed attempts only.
	Login(ctx context.Context, req dto.LoginRequest, clientIP string) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
}

type authService struct {
	usuarios   repository.UsuarioRepository
	intentos   repository.LoginAttemptRepository
	dispatcher *worker.Dispatcher
	cfg        *config.Config
	// now is injectable so the lockout window can be tested without sleeping.
	now func() time.Time
}

func NewAuthService(
	usuarios repository.UsuarioRepository,
	intentos repository.LoginAttemptRepository,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) AuthService {
	return &authService{
		usuarios:   usuarios,
		intentos:   intentos,
		dispatcher: dispatcher,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Login implements the per-account lockout guard:
//   - unknown email: reject, nothing is logged (there is no user id to log
//     against);
//   - count failed attempts inside the trailing window; at or past the
//     threshold the attempt is rejected BEFORE comparing the password and no
//     new row is written — the lock state is recomputed every time, never
//     stored;
//   - wrong password: append a failure row with the client IP and reason;
//   - correct password: no row is written, a token pair is issued.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest, clientIP string) (*dto.LoginResponse, error) {
	user, err := s.usuarios.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUnauthorized("No se encontró un usuario")
		}
		return nil, err
	}

	since := s.now().Add(-time.Duration(s.cfg.LockWindowMinutes) * time.Minute)
	failed, err := s.intentos.CountRecentFailures(ctx, user.ID, since)
	if err != nil {
		return nil, err
	}
	if failed >= int64(s.cfg.MaxLoginAttempts) {
		s.notifyBloqueo(ctx, user.Email)
		return nil, errLocked(fmt.Sprintf(
			"Su cuenta esta temporalmente bloqueada. Por favor intente de nuevo en %d minutos.",
			s.cfg.LockWindowMinutes))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.logFailure(ctx, user.ID, clientIP, "Contraseña inválida")
		return nil, errUnauthorized("Contraseña inválida")
	}

	return s.tokenPair(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errUnauthorized("Refresh token inválido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errUnauthorized("Token mal formado")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errUnauthorized("Token mal formado")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errUnauthorized("Token mal formado")
	}

	user, err := s.usuarios.FindByID(ctx, uid)
	if err != nil {
		return nil, errUnauthorized("Usuario no encontrado")
	}

	return s.tokenPair(user)
}

// logFailure appends the audit row. A failed insert must not mask the real
// authentication outcome, so errors are only logged.
func (s *authService) logFailure(ctx context.Context, usuarioID uuid.UUID, clientIP, reason string) {
	attempt := &model.LoginAttempt{
		UsuarioID:   usuarioID,
		Success:     false,
		AttemptedAt: s.now(),
		Reason:      &reason,
	}
	if clientIP != "" {
		attempt.IPAddress = &clientIP
	}
	if err := s.intentos.Create(ctx, attempt); err != nil {
		log.Error().Err(err).Str("usuario_id", usuarioID.String()).Msg("failed to record login attempt")
	}
}

// notifyBloqueo enqueues the lockout warning email. Best effort: the login
// rejection does not depend on the notification.
func (s *authService) notifyBloqueo(ctx context.Context, email string) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.EnqueueBloqueo(ctx, email); err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to enqueue lockout warning")
	}
}

func (s *authService) tokenPair(user *model.Usuario) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	var negocioID *string
	if user.NegocioID != nil {
		id := user.NegocioID.String()
		negocioID = &id
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User: dto.UsuarioResponse{
			ID:           user.ID.String(),
			Name:         user.Name,
			Lastname:     user.Lastname,
			Email:        user.Email,
			NegocioID:    negocioID,
			ProfileImage: user.ProfileImage,
		},
	}, nil
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"exp":     now.Add(duration).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
