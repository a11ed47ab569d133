package handler

import (
	"net/http"
	"strconv"

	activityDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/dto"
	activity "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/service"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/response"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	service activity.PointsService
}

func NewActivityHandler(service activity.PointsService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

func (h *ActivityHandler) RecordActivity(c *gin.Context) {
	var req activityDto.RecordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	req.UserFid = response.ActingFid(c, req.UserFid)
	if req.UserFid <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userFid is required"})
		return
	}

	resp, err := h.service.Record(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ActivityHandler) GetActivities(c *gin.Context) {
	fid, err := strconv.ParseInt(c.Query("fid"), 10, 64)
	if err != nil || fid <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fid query parameter is required"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	resp, err := h.service.History(c.Request.Context(), fid, limit, offset)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
