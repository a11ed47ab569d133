package handler

import (
	"net/http"
	"strconv"

	followDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/follow/dto"
	follow "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/follow/service"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/response"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/validator"
	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	service follow.FollowService
}

func NewFollowHandler(service follow.FollowService) *FollowHandler {
	return &FollowHandler{service: service}
}

func (h *FollowHandler) Toggle(c *gin.Context) {
	var req followDto.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	req.UserFid = response.ActingFid(c, req.UserFid)
	if req.UserFid <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userFid is required"})
		return
	}

	resp, err := h.service.Toggle(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *FollowHandler) Status(c *gin.Context) {
	userFid, err := strconv.ParseInt(c.Query("userFid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userFid is required"})
		return
	}
	targetFid, err := strconv.ParseInt(c.Query("targetFid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "targetFid is required"})
		return
	}

	resp, err := h.service.Status(c.Request.Context(), userFid, targetFid)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
