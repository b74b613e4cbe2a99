package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/models"
)

func (h *Handler) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if !bindJSON(c, &req) {
		return
	}

	message, err := h.Contact.SubmitContactMessage(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, global.MessageResponse("Thanks for reaching out, we will get back to you soon", map[string]string{"id": message.ID}))
}
