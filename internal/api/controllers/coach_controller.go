package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pawcz12345-dotcom/ironpact/internal/models/request_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/services"
	"github.com/pawcz12345-dotcom/ironpact/pkg/middleware"
	"github.com/pawcz12345-dotcom/ironpact/pkg/utils"
)

type CoachController struct {
	coachService services.CoachServiceInterface
	embedService services.EmbeddingServiceInterface
}

func NewCoachController(
	coachService services.CoachServiceInterface,
	embedService services.EmbeddingServiceInterface,
) *CoachController {
	return &CoachController{
		coachService: coachService,
		embedService: embedService,
	}
}

// Recommend godoc
// @Summary Get a progressive-overload recommendation
// @Description Returns a cached result when one exists from the last 24h, otherwise charges tokens and asks the coach model
// @Tags Coach
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.RecommendationRequest true "Exercise and optional history"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 402 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /coach/recommendation [post]
func (co *CoachController) Recommend(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req request_models.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Missing exercise name or history")
		return
	}

	resp, err := co.coachService.Recommend(c.Request.Context(), userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "")
}

// SimilarExercises godoc
// @Summary Find exercises similar to a given one
// @Tags Coach
// @Produce json
// @Security BearerAuth
// @Param exercise query string true "Exercise name"
// @Param k query int false "Result count" default(5)
// @Success 200 {object} utils.APIResponse
// @Router /coach/similar [get]
func (co *CoachController) SimilarExercises(c *gin.Context) {
	if _, ok := middleware.UserID(c); !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	exercise := c.Query("exercise")
	k, _ := strconv.Atoi(c.DefaultQuery("k", "5"))

	names, err := co.embedService.SimilarExercises(c.Request.Context(), exercise, k)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"exercises": names}, "")
}
