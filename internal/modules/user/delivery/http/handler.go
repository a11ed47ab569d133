package handler

import (
	"net/http"
	"strconv"

	userDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/dto"
	user "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/service"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/response"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/validator"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service user.UserService
}

func NewUserHandler(service user.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) SignIn(c *gin.Context) {
	var req userDto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) UpsertUser(c *gin.Context) {
	var req userDto.UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	req.Fid = response.ActingFid(c, req.Fid)
	if req.Fid <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fid is required"})
		return
	}

	user, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, userDto.UserResponse{Success: true, User: user})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	fidStr := c.Query("fid")
	fid, err := strconv.ParseInt(fidStr, 10, 64)
	if err != nil || fid <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fid query parameter is required"})
		return
	}

	user, err := h.service.GetByFid(c.Request.Context(), fid)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, userDto.UserResponse{Success: true, User: user})
}
