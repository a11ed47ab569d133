package handler

import (
	"net/http"

	clapDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/clap/dto"
	clap "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/clap/service"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/response"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ClapHandler struct {
	service clap.ClapService
}

func NewClapHandler(service clap.ClapService) *ClapHandler {
	return &ClapHandler{service: service}
}

func (h *ClapHandler) Clap(c *gin.Context) {
	var req clapDto.ClapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	req.UserFid = response.ActingFid(c, req.UserFid)
	if req.UserFid <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userFid is required"})
		return
	}

	resp, err := h.service.Clap(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
