package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-rest-service/internal/usecase/user"
	apperrors "user-rest-service/pkg/errors"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user.
// There is no id field: the store assigns ids, so one supplied by the client
// is dropped during decoding.
type CreateUserRequest struct {
	Username string `json:"username"`
	Age      int64  `json:"userage"`
}

// UpdateUserRequest represents the HTTP request body for updating a user.
// The id must match the one in the request path.
type UpdateUserRequest struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Age      int64  `json:"userage"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Age      int64  `json:"userage"`
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = UserResponse{
			ID:       u.ID,
			Username: u.Username,
			Age:      u.Age,
		}
	}

	// A bare array, [] when the store is empty.
	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:       resp.ID,
		Username: resp.Username,
		Age:      resp.Age,
	})
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create user body", zap.Error(err))
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Username: req.Username,
		Age:      req.Age,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/users/%d", resp.ID))
	c.JSON(http.StatusCreated, UserResponse{
		ID:       resp.ID,
		Username: resp.Username,
		Age:      resp.Age,
	})
}

// UpdateUser handles PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid update user body", zap.Int64("id", id), zap.Error(err))
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		PathID:   id,
		ID:       req.ID,
		Username: req.Username,
		Age:      req.Age,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:       resp.ID,
		Username: resp.Username,
		Age:      resp.Age,
	})
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if _, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: id}); err != nil {
		h.handleError(c, err)
		return
	}

	c.String(http.StatusOK, "User deleted")
}

// pathID parses the :id path parameter. On failure it writes the 400
// response itself and reports false.
func (h *UserHandler) pathID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Warn("invalid user id in path", zap.String("id", idStr), zap.Error(err))
		c.String(http.StatusBadRequest, "user id must be an integer")
		return 0, false
	}
	return id, true
}

// handleError maps usecase errors onto HTTP responses. Validation and
// not-found messages travel to the client verbatim as plain text; anything
// unrecognized gets the fixed 500 body while the detail stays server-side.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	status := apperrors.StatusOf(err)
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	c.String(status, err.Error())
}
