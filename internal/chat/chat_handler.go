package chat

import (
	"errors"
	"net/http"

	"lingua-service/internal/server/middleware"
	"lingua-service/pkg/httperr"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	streamClient StreamClient
}

func NewChatHandler(streamClient StreamClient) *ChatHandler {
	return &ChatHandler{streamClient: streamClient}
}

// @Summary Get a chat token
// @Description Mint a provider token for the authenticated user to connect to chat/video
// @Tags chat
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} httperr.Error
// @Failure 500 {object} map[string]string
// @Router /chat/token [get]
func (h *ChatHandler) GetToken(c *gin.Context) {
	user, err := middleware.CurrentUser(c.Request.Context())
	if err != nil {
		httperr.Write(c, httperr.Auth("Unauthorized"))
		return
	}

	// Chat access cannot proceed without a provider token, so unlike the
	// identity sync this failure propagates to the caller.
	if h.streamClient == nil {
		httperr.Write(c, errors.New("chat provider is not configured"))
		return
	}

	tok, err := h.streamClient.CreateToken(user.ID)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tok})
}
