package domain

import (
	"strings"
	"time"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	DefaultImage      = "upload/images/users/userAvatarPlaceHolder.png"
	MinPasswordLength = 6
	ResetTokenTTL     = 30 * time.Minute
)

// User es una cuenta de la tienda. Password guarda el hash bcrypt y nunca se serializa.
type User struct {
	ID                  uuid.UUID  `json:"_id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Tel                 string     `json:"tel"`
	Address             string     `json:"address"`
	City                string     `json:"city"`
	PostalCode          string     `json:"postalCode"`
	Password            string     `json:"-"`
	Image               string     `json:"image"`
	Role                string     `json:"role"`
	CreatedAt           time.Time  `json:"createdAt"`
	ResetPasswordToken  string     `json:"-"`
	ResetPasswordExpire *time.Time `json:"-"`
}

// NewUser crea una cuenta con rol user. passwordHash ya viene cifrado.
func NewUser(name, email, tel, passwordHash string) *User {
	return &User{
		ID:        uuid.New(),
		Name:      name,
		Email:     NormalizeEmail(email),
		Tel:       tel,
		Password:  passwordHash,
		Image:     DefaultImage,
		Role:      sharedDomain.RoleUser,
		CreatedAt: time.Now().UTC(),
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Principal es la vista de la cuenta que usa la autorización.
func (u *User) Principal() *sharedDomain.Principal {
	return &sharedDomain.Principal{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// SetResetToken guarda el hash del token de reseteo con su caducidad.
func (u *User) SetResetToken(hashed string, now time.Time) time.Time {
	expire := now.Add(ResetTokenTTL)
	u.ResetPasswordToken = hashed
	u.ResetPasswordExpire = &expire
	return expire
}

func (u *User) ClearResetToken() {
	u.ResetPasswordToken = ""
	u.ResetPasswordExpire = nil
}

// ResetTokenValid indica si hashed coincide y no ha caducado en now.
func (u *User) ResetTokenValid(hashed string, now time.Time) bool {
	return u.ResetPasswordToken != "" &&
		u.ResetPasswordToken == hashed &&
		u.ResetPasswordExpire != nil &&
		u.ResetPasswordExpire.After(now)
}

// Profile son los datos que el propio usuario puede cambiar.
type Profile struct {
	Name       *string
	Email      *string
	Tel        *string
	Address    *string
	City       *string
	PostalCode *string
}

func (u *User) ApplyProfile(p Profile) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&u.Name, p.Name)
	set(&u.Tel, p.Tel)
	set(&u.Address, p.Address)
	set(&u.City, p.City)
	set(&u.PostalCode, p.PostalCode)
	if p.Email != nil {
		u.Email = NormalizeEmail(*p.Email)
	}
}
