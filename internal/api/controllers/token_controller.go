package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pawcz12345-dotcom/ironpact/internal/models/response_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/services"
	"github.com/pawcz12345-dotcom/ironpact/pkg/middleware"
	"github.com/pawcz12345-dotcom/ironpact/pkg/utils"
)

type TokenController struct {
	tokenService services.TokenServiceInterface
}

func NewTokenController(tokenService services.TokenServiceInterface) *TokenController {
	return &TokenController{
		tokenService: tokenService,
	}
}

func (t *TokenController) Balance(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	balance, err := t.tokenService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.TokenBalanceResponse{Balance: balance}, "")
}

func (t *TokenController) Transactions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	txns, err := t.tokenService.ListTransactions(c.Request.Context(), userID, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, txns, "")
}
