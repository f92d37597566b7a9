package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawcz12345-dotcom/ironpact/internal/models/request_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/services"
	"github.com/pawcz12345-dotcom/ironpact/pkg/middleware"
	"github.com/pawcz12345-dotcom/ironpact/pkg/utils"
)

type FriendController struct {
	friendService services.FriendServiceInterface
}

func NewFriendController(friendService services.FriendServiceInterface) *FriendController {
	return &FriendController{
		friendService: friendService,
	}
}

func (f *FriendController) SendRequest(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req request_models.FriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := f.friendService.SendRequest(c.Request.Context(), userID, req.Username); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Friend request sent")
}

func (f *FriendController) AcceptRequest(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	connectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid connection id")
		return
	}

	if err := f.friendService.AcceptRequest(c.Request.Context(), userID, connectionID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Friend request accepted")
}

func (f *FriendController) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	friends, err := f.friendService.ListFriends(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, friends, "")
}

func (f *FriendController) ListPending(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	pending, err := f.friendService.ListPending(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pending, "")
}

func (f *FriendController) Compare(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	friendID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid friend id")
		return
	}

	comparison, err := f.friendService.Compare(c.Request.Context(), userID, friendID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, comparison, "")
}
