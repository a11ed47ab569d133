package handler

import (
	"net/http"
	"strconv"
	"strings"

	artistDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/artist/dto"
	artist "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/artist/service"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/response"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/validator"
	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type ArtistHandler struct {
	service artist.ArtistService
}

func NewArtistHandler(service artist.ArtistService) *ArtistHandler {
	return &ArtistHandler{service: service}
}

func (h *ArtistHandler) Apply(c *gin.Context) {
	var req artistDto.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	req.Fid = response.ActingFid(c, req.Fid)
	if req.Fid <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fid is required"})
		return
	}

	resp, err := h.service.Apply(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ArtistHandler) ListArtists(c *gin.Context) {
	limit, offset := pagination(c)

	resp, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ArtistHandler) GetProfile(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	var currentUserFid int64
	if raw := c.Query("currentUserFid"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "currentUserFid must be a number"})
			return
		}
		currentUserFid = parsed
	}

	resp, err := h.service.Profile(c.Request.Context(), username, currentUserFid)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			offset = parsed
		}
	}
	return limit, offset
}
