package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VlaDexa/misisa/models"
)

// AlisaHandler принимает вебхуки Яндекс Диалогов
type AlisaHandler struct{}

func NewAlisaHandler() *AlisaHandler {
	return &AlisaHandler{}
}

// Trigger принимает запрос Алисы. Значение "ping" в
// original_utterance — тестовый запрос Диалогов.
func (h *AlisaHandler) Trigger(c *gin.Context) {
	var req models.AlisaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid alisa request",
			Message: err.Error(),
		})
		return
	}

	log.Printf("Запрос Алисы (%s): %q", req.Type, req.Command)

	c.JSON(http.StatusOK, gin.H{"message": "Ok"})
}
