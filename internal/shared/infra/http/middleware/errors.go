package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	"github.com/davicafu/storefront/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const internalMessage = "Internal server error"

// ErrorHandler convierte el último error registrado con c.Error en la respuesta
// {"success": false, "message": ...}. En desarrollo añade errMessage con el error original.
func ErrorHandler(log *zap.Logger, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status, message := Classify(err)

		if status >= http.StatusInternalServerError {
			log.Error("Request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
		} else {
			log.Debug("Request rejected", zap.Int("status", status), zap.Error(err))
		}

		if c.Writer.Written() {
			return
		}
		detail := ""
		if development {
			detail = err.Error()
		}
		utils.SendError(c, status, message, detail)
	}
}

// Classify devuelve el estado HTTP y el mensaje visible de err.
func Classify(err error) (int, string) {
	var appErr *sharedDomain.Error
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		msgs := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			msgs = append(msgs, validationMessage(fe))
		}
		return http.StatusBadRequest, strings.Join(msgs, ", ")
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) {
		return http.StatusBadRequest, "Invalid request body"
	}
	if errors.As(err, &typeErr) {
		return http.StatusBadRequest, fmt.Sprintf("Invalid value for %s", typeErr.Field)
	}

	return http.StatusInternalServerError, internalMessage
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Please enter %s", fe.Field())
	case "max":
		return fmt.Sprintf("%s can not be more than %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("Please select correct %s", fe.Field())
	case "email":
		return "Please enter a valid email address"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
