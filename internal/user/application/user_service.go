package application

import (
	"context"
	"errors"
	"net/url"
	"time"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	sharedEvents "github.com/davicafu/storefront/internal/shared/domain/events"
	"github.com/davicafu/storefront/internal/shared/infra/auth"
	sharedCache "github.com/davicafu/storefront/internal/shared/infra/platform/cache"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	sharedUtils "github.com/davicafu/storefront/internal/shared/infra/utils"
	userDomain "github.com/davicafu/storefront/internal/user/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenIssuer firma el token de sesión de una cuenta.
type TokenIssuer interface {
	Issue(id uuid.UUID) (string, error)
}

// Session es una cuenta recién autenticada con su token.
type Session struct {
	User  *userDomain.User
	Token string
}

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Tel        string
	Address    string
	City       string
	PostalCode string
}

// UserService define los casos de uso de cuentas y autenticación.
type UserService struct {
	repo       userDomain.UserRepository
	tokens     TokenIssuer
	cache      sharedCache.Cache
	cacheTTL   int
	backendURL string
	log        *zap.Logger
	now        func() time.Time
}

func NewUserService(
	repo userDomain.UserRepository,
	tokens TokenIssuer,
	cache sharedCache.Cache,
	cacheTTL time.Duration,
	backendURL string,
	log *zap.Logger,
) *UserService {
	return &UserService{
		repo:       repo,
		tokens:     tokens,
		cache:      cache,
		cacheTTL:   int(cacheTTL.Seconds()),
		backendURL: backendURL,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

var _ sharedDomain.PrincipalLoader = (*UserService)(nil)

func (s *UserService) session(u *userDomain.User) (*Session, error) {
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Token: token}, nil
}

func (s *UserService) setPassword(u *userDomain.User, plain string) error {
	if len(plain) < userDomain.MinPasswordLength {
		return userDomain.ErrPasswordTooShort
	}
	hash, err := auth.HashPassword(plain)
	if err != nil {
		return err
	}
	u.Password = hash
	return nil
}

// --- Autenticación ---

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	user := userDomain.NewUser(in.Name, in.Email, in.Tel, "")
	user.Address, user.City, user.PostalCode = in.Address, in.City, in.PostalCode
	if err := s.setPassword(user, in.Password); err != nil {
		return nil, err
	}

	evt := sharedDomain.NewOutboxEvent(userDomain.AggregateType, user.ID.String(), userDomain.UserRegistered, sharedEvents.UserRegistered{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
	if err := s.repo.Create(ctx, user, evt); err != nil {
		return nil, err
	}

	s.log.Info("User registered", zap.String("id", user.ID.String()), zap.String("email", user.Email))
	return s.session(user)
}

func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, userDomain.ErrMissingCredentials
	}

	user, err := s.repo.GetByEmail(ctx, userDomain.NormalizeEmail(email))
	if errors.Is(err, userDomain.ErrUserNotFound) {
		return nil, userDomain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.ComparePassword(user.Password, password) {
		return nil, userDomain.ErrInvalidCredentials
	}
	return s.session(user)
}

// ForgotPassword guarda el hash de un token de reseteo y deja en la outbox el
// enlace para el servicio de correo. Devuelve el email de la cuenta.
func (s *UserService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, userDomain.NormalizeEmail(email))
	if errors.Is(err, userDomain.ErrUserNotFound) {
		return "", userDomain.ErrEmailNotFound
	}
	if err != nil {
		return "", err
	}

	raw, hashed, err := auth.NewResetToken()
	if err != nil {
		return "", err
	}
	expires := user.SetResetToken(hashed, s.now())

	evt := sharedDomain.NewOutboxEvent(userDomain.AggregateType, user.ID.String(), userDomain.PasswordResetRequested, sharedEvents.PasswordResetRequested{
		ID:       user.ID,
		Email:    user.Email,
		ResetURL: s.ResetURL(raw),
		Expires:  expires,
	})
	if err := s.repo.UpdateWithEvent(ctx, user, evt); err != nil {
		return "", err
	}
	return user.Email, nil
}

// ResetURL es el enlace que recibe el usuario por correo.
func (s *UserService) ResetURL(rawToken string) string {
	return s.backendURL + "reset/" + rawToken
}

func (s *UserService) ResetPassword(ctx context.Context, rawToken, password, confirm string) (*Session, error) {
	user, err := s.repo.GetByResetToken(ctx, auth.HashResetToken(rawToken), s.now())
	if errors.Is(err, userDomain.ErrUserNotFound) {
		return nil, userDomain.ErrInvalidResetToken
	}
	if err != nil {
		return nil, err
	}
	if password != confirm {
		return nil, userDomain.ErrPasswordMismatch
	}
	if err := s.setPassword(user, password); err != nil {
		return nil, err
	}
	user.ClearResetToken()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.session(user)
}

// --- Perfil propio ---

func (s *UserService) Me(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) UpdatePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) (*Session, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.ComparePassword(user.Password, oldPassword) {
		return nil, userDomain.ErrOldPasswordWrong
	}
	if err := s.setPassword(user, newPassword); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.session(user)
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, profile userDomain.Profile) (*userDomain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.ApplyProfile(profile)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	sharedCache.CacheDelete(ctx, s.cache, userDomain.CacheKeyByID(id), s.log)
	return user, nil
}

// --- Administración ---

// ListUsers busca por nombre, filtra y pagina de 100 en 100.
func (s *UserService) ListUsers(ctx context.Context, params url.Values) ([]*userDomain.User, error) {
	f := sharedQuery.NewFeatures(s.repo.NewQuery(), params, sharedQuery.WithSchema(userDomain.Schema)).
		Search().
		Filter().
		Sort(sharedQuery.Desc("createdAt")).
		Pagination(userDomain.AdminPageSize)
	return s.repo.List(ctx, f.Query())
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// AdminUpdateUser cambia nombre, email y rol; los campos vacíos no se tocan.
func (s *UserService) AdminUpdateUser(ctx context.Context, id uuid.UUID, name, email, role string) (*userDomain.User, error) {
	if role != "" && role != sharedDomain.RoleUser && role != sharedDomain.RoleAdmin {
		return nil, userDomain.ErrInvalidRole
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = userDomain.NormalizeEmail(email)
	}
	if role != "" {
		user.Role = role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	sharedCache.CacheDelete(ctx, s.cache, userDomain.CacheKeyByID(id), s.log)
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return nil, err
	}
	sharedCache.CacheDelete(ctx, s.cache, userDomain.CacheKeyByID(id), s.log)
	s.log.Info("User deleted", zap.String("id", id.String()))
	return user, nil
}

// LoadPrincipal resuelve la cuenta de un token verificado (primero intenta desde cache).
func (s *UserService) LoadPrincipal(ctx context.Context, id uuid.UUID) (*sharedDomain.Principal, error) {
	key := userDomain.CacheKeyByID(id)

	if s.cache != nil {
		var p sharedDomain.Principal
		if ok, err := s.cache.Get(ctx, key, &p); ok {
			return &p, nil
		} else if err != nil {
			s.log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	var user *userDomain.User
	err := sharedUtils.Retry(ctx, 3, 100*time.Millisecond, func() error {
		var err error
		user, err = s.repo.GetByID(ctx, id)
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return sharedUtils.Permanent(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	principal := user.Principal()
	sharedCache.CacheSet(ctx, s.cache, key, principal, s.cacheTTL, s.log)
	return principal, nil
}
