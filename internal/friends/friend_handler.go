package friends

import (
	"net/http"

	"lingua-service/internal/server/middleware"
	"lingua-service/pkg/httperr"

	"github.com/gin-gonic/gin"
)

type FriendHandler struct {
	friendService *FriendService
}

func NewFriendHandler(friendService *FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

// @Summary Recommended users
// @Description List onboarded users the current user is not yet friends with
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} map[string]string
// @Router /users [get]
func (h *FriendHandler) GetRecommended(c *gin.Context) {
	user, err := middleware.CurrentUser(c.Request.Context())
	if err != nil {
		httperr.Write(c, httperr.Auth("Unauthorized"))
		return
	}

	users, err := h.friendService.Recommended(c.Request.Context(), user.ID)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// @Summary My friends
// @Description List the current user's friends as public profiles
// @Tags users
// @Produce json
// @Success 200 {array} models.Profile
// @Failure 500 {object} map[string]string
// @Router /users/friends [get]
func (h *FriendHandler) GetFriends(c *gin.Context) {
	user, err := middleware.CurrentUser(c.Request.Context())
	if err != nil {
		httperr.Write(c, httperr.Auth("Unauthorized"))
		return
	}

	profiles, err := h.friendService.Friends(c.Request.Context(), user.ID)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// @Summary Send a friend request
// @Description Create a pending request to the user in the path
// @Tags users
// @Produce json
// @Param id path string true "Recipient user ID"
// @Success 201 {object} models.FriendRequest
// @Failure 400 {object} httperr.Error
// @Failure 404 {object} httperr.Error
// @Router /users/friend-request/{id} [post]
func (h *FriendHandler) SendRequest(c *gin.Context) {
	user, err := middleware.CurrentUser(c.Request.Context())
	if err != nil {
		httperr.Write(c, httperr.Auth("Unauthorized"))
		return
	}

	request, err := h.friendService.SendRequest(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

// @Summary Accept a friend request
// @Description Accept a pending request addressed to the current user
// @Tags users
// @Produce json
// @Param id path string true "Friend request ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} httperr.Error
// @Failure 404 {object} httperr.Error
// @Router /users/friend-request/{id}/accept [put]
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	user, err := middleware.CurrentUser(c.Request.Context())
	if err != nil {
		httperr.Write(c, httperr.Auth("Unauthorized"))
		return
	}

	if err := h.friendService.AcceptRequest(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted successfully"})
}

// @Summary Friend requests
// @Description Incoming pending requests plus accepted requests the user sent
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /users/friend-requests [get]
func (h *FriendHandler) GetFriendRequests(c *gin.Context) {
	user, err := middleware.CurrentUser(c.Request.Context())
	if err != nil {
		httperr.Write(c, httperr.Auth("Unauthorized"))
		return
	}

	incoming, err := h.friendService.Incoming(c.Request.Context(), user.ID)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	accepted, err := h.friendService.AcceptedSent(c.Request.Context(), user.ID)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"incomingReqs": incoming, "acceptedReqs": accepted})
}

// @Summary Outgoing friend requests
// @Description Pending requests the current user has sent
// @Tags users
// @Produce json
// @Success 200 {array} models.FriendRequestResponse
// @Failure 500 {object} map[string]string
// @Router /users/outgoing-friend-requests [get]
func (h *FriendHandler) GetOutgoingRequests(c *gin.Context) {
	user, err := middleware.CurrentUser(c.Request.Context())
	if err != nil {
		httperr.Write(c, httperr.Auth("Unauthorized"))
		return
	}

	outgoing, err := h.friendService.Outgoing(c.Request.Context(), user.ID)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, outgoing)
}
