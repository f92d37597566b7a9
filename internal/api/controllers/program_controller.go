package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawcz12345-dotcom/ironpact/internal/models/request_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/services"
	"github.com/pawcz12345-dotcom/ironpact/pkg/middleware"
	"github.com/pawcz12345-dotcom/ironpact/pkg/utils"
)

type ProgramController struct {
	programService services.ProgramServiceInterface
}

func NewProgramController(programService services.ProgramServiceInterface) *ProgramController {
	return &ProgramController{
		programService: programService,
	}
}

func (p *ProgramController) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	program, err := p.programService.Get(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, program, "")
}

func (p *ProgramController) Save(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req request_models.SaveProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	version, err := p.programService.Save(c.Request.Context(), userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"version": version}, "Program saved")
}

func (p *ProgramController) ListVersions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	versions, err := p.programService.ListVersions(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, versions, "")
}
