package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	userDomain "github.com/davicafu/storefront/internal/user/domain"
)

func TestUserMapping_RoundTrip(t *testing.T) {
	u := userDomain.NewUser("Ana", "Ana@Example.com", "0915", "$2a$10$hash")
	u.City = "Mashhad"
	u.SetResetToken("abc", time.Now().UTC())

	back := fromMongoUser(toMongoUser(u))

	assert.Equal(t, u, back)
	assert.Equal(t, "ana@example.com", back.Email)
}

func TestUserMapping_KeepsPasswordHash(t *testing.T) {
	u := userDomain.NewUser("Ana", "ana@example.com", "0915", "$2a$10$hash")

	mu := toMongoUser(u)

	assert.Equal(t, "$2a$10$hash", mu.Password)
	assert.Empty(t, mu.ResetPasswordToken)
	assert.Nil(t, mu.ResetPasswordExpire)
}
