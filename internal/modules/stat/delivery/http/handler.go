package handler

import (
	"net/http"

	stat "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/stat/service"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/response"
	"github.com/gin-gonic/gin"
)

type StatHandler struct {
	service stat.StatService
}

func NewStatHandler(service stat.StatService) *StatHandler {
	return &StatHandler{service: service}
}

func (h *StatHandler) GetStats(c *gin.Context) {
	resp, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
