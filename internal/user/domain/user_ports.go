package domain

import (
	"context"
	"fmt"
	"time"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = sharedDomain.NotFound("User not found")
	ErrEmailNotFound      = sharedDomain.NotFound("User not found with this email!")
	ErrMissingCredentials = sharedDomain.BadRequest("Please enter email and password!")
	ErrInvalidCredentials = sharedDomain.Unauthorized("Invalid email or password!")
	ErrInvalidResetToken  = sharedDomain.BadRequest("Password reset token is Invalid or has been expired!")
	ErrPasswordMismatch   = sharedDomain.BadRequest("Password does not match!")
	ErrOldPasswordWrong   = sharedDomain.BadRequest("Old password is incorrect")
	ErrPasswordTooShort   = sharedDomain.BadRequest(fmt.Sprintf("Your password must be longer than %d characters!", MinPasswordLength))
	ErrUserAlreadyExists  = sharedDomain.BadRequest("Duplicate email entered")
	ErrInvalidRole        = sharedDomain.BadRequest("Please select correct role")
)

const AdminPageSize = 100

var Schema = sharedQuery.Schema{"createdAt": sharedQuery.Time}

// UserRepository define las operaciones persistentes para User.
// Las escrituras con evento lo guardan en la outbox en la misma transacción.
type UserRepository interface {
	NewQuery() sharedQuery.Descriptor
	List(ctx context.Context, q sharedQuery.Descriptor) ([]*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByResetToken busca una cuenta con ese hash y caducidad posterior a now.
	GetByResetToken(ctx context.Context, hashed string, now time.Time) (*User, error)
	Create(ctx context.Context, u *User, evt sharedDomain.OutboxEvent) error
	Update(ctx context.Context, u *User) error
	UpdateWithEvent(ctx context.Context, u *User, evt sharedDomain.OutboxEvent) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// CacheKeyByID es la clave del principal de id en la caché.
func CacheKeyByID(id uuid.UUID) string {
	return fmt.Sprintf("principal:id:%s", id.String())
}

// Mailer entrega los correos de cuenta. El envío real vive fuera de este servicio.
type Mailer interface {
	SendWelcome(ctx context.Context, name, email string) error
	SendPasswordReset(ctx context.Context, email, resetURL string, expires time.Time) error
}
