package handler

import (
	"net/http"
	"strconv"
	"strings"

	searchDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/search/dto"
	search "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/search/service"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

type SearchHandler struct {
	service search.SearchService
}

func NewSearchHandler(service search.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) SearchArtists(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	results, err := h.service.Search(c.Request.Context(), query, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, searchDto.SearchArtistsResponse{
		Success: true,
		Query:   query,
		Results: results,
	})
}
