package handler

import (
	"net/http"

	adminDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/admin/dto"
	admin "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/admin/service"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/response"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	service admin.AdminService
}

func NewAdminHandler(service admin.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) ListPendingArtists(c *gin.Context) {
	resp, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) ApproveArtist(c *gin.Context) {
	var req adminDto.ApproveArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.Decide(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
