package handler

import (
	"net/http"
	"strconv"

	referralDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/referral/dto"
	referral "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/referral/service"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/response"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	service referral.ReferralService
}

func NewReferralHandler(service referral.ReferralService) *ReferralHandler {
	return &ReferralHandler{service: service}
}

func (h *ReferralHandler) ListCodes(c *gin.Context) {
	fid, err := strconv.ParseInt(c.Query("fid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fid is required"})
		return
	}

	resp, err := h.service.List(c.Request.Context(), fid)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ReferralHandler) GenerateCode(c *gin.Context) {
	var req referralDto.GenerateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	req.Fid = response.ActingFid(c, req.Fid)
	if req.Fid <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fid is required"})
		return
	}

	resp, err := h.service.Generate(c.Request.Context(), req.Fid)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
