package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contabilis/group_ledger_app/internal/apperrors"
	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

// userHandler handles user management requests.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(userService portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: userService}
}

func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("/:user_id", h.getUser)
		users.PUT("/:user_id", h.updateUser)
	}
}

// createUser godoc
// @Summary Register a user
// @Description Creates a new user account with a hashed password.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} MessageResponse{data=dto.UserResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, dto.ToUserResponse(user), "user created")
}

// getUser godoc
// @Summary Get a user
// @Description Retrieves a user by ID. Users may only read their own profile.
// @Tags users
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} DataResponse{data=dto.UserResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{user_id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	callerID, ok := requireUserID(c)
	if !ok {
		return
	}
	targetID := c.Param("user_id")
	if targetID != callerID {
		respondError(c, apperrors.NewForbiddenError("users may only access their own profile"))
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update a user
// @Description Applies a partial update to the caller's own profile.
// @Tags users
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} MessageResponse{data=dto.UserResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{user_id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	callerID, ok := requireUserID(c)
	if !ok {
		return
	}
	targetID := c.Param("user_id")
	if targetID != callerID {
		respondError(c, apperrors.NewForbiddenError("users may only update their own profile"))
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), targetID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, dto.ToUserResponse(user), "user updated")
}
