package events

import (
	"time"

	"github.com/google/uuid"
)

// Estos son contratos de integración, NO entidades del dominio.
// Se definen planos para intercambio entre contextos.
type UserRegistered struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// PasswordResetRequested lleva el enlace que el servicio de correo debe enviar.
type PasswordResetRequested struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	ResetURL string    `json:"resetUrl"`
	Expires  time.Time `json:"expires"`
}
