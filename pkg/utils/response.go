package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SendSuccess responde {"success": true, ...fields}.
func SendSuccess(c *gin.Context, statusCode int, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// SendMessage responde {"success": true, "message": message}.
func SendMessage(c *gin.Context, statusCode int, message string) {
	SendSuccess(c, statusCode, gin.H{"message": message})
}

// SendError envía una respuesta de error con el formato estándar.
// detail solo se incluye cuando no está vacío (modo DEVELOPMENT).
func SendError(c *gin.Context, statusCode int, message, detail string) {
	body := gin.H{
		"success": false,
		"message": message,
	}
	if detail != "" {
		body["errMessage"] = detail
	}
	c.AbortWithStatusJSON(statusCode, body)
}

// --- Helpers específicos para errores comunes ---

func SendBadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message, "")
}

func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, message, "")
}

func SendInternalServerError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, message, "")
}
