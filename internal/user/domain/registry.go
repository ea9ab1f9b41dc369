package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/storefront/internal/shared/domain/events"
)

const (
	UserRegistered         = "user.registered"
	PasswordResetRequested = "user.password_reset_requested"
)

const AggregateType = "user"

func NewEventRegistry(topic string) map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		UserRegistered:         {Type: reflect.TypeOf(sharedEvents.UserRegistered{}), Topic: topic},
		PasswordResetRequested: {Type: reflect.TypeOf(sharedEvents.PasswordResetRequested{}), Topic: topic},
	}
}
