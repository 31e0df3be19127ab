package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

// groupHandler handles economic group, membership and configuration requests.
type groupHandler struct {
	groupService portssvc.GroupSvcFacade
}

func newGroupHandler(groupService portssvc.GroupSvcFacade) *groupHandler {
	return &groupHandler{groupService: groupService}
}

func registerGroupRoutes(rg *gin.RouterGroup, groupService portssvc.GroupSvcFacade) {
	h := newGroupHandler(groupService)

	groups := rg.Group("/groups")
	{
		groups.POST("", h.createGroup)
		groups.GET("", h.listGroups)
		groups.GET("/:group_id", h.getGroup)
		groups.PUT("/:group_id", h.updateGroup)
		groups.DELETE("/:group_id", h.deactivateGroup)

		groups.POST("/:group_id/users", h.addUser)
		groups.GET("/:group_id/users", h.listUsers)
		groups.DELETE("/:group_id/users/:user_id", h.removeUser)

		groups.GET("/:group_id/configuration", h.getConfiguration)
		groups.PUT("/:group_id/configuration", h.updateConfiguration)
	}
}

// createGroup godoc
// @Summary Create an economic group
// @Description Creates a group with its default accounting configuration, an empty chart of accounts and the creator's ADMIN membership.
// @Tags groups
// @Accept json
// @Produce json
// @Param group body dto.CreateGroupRequest true "Group details"
// @Success 201 {object} MessageResponse{data=dto.GroupResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups [post]
func (h *groupHandler) createGroup(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, dto.ToGroupResponse(group), "group created")
}

// listGroups godoc
// @Summary List the caller's groups
// @Description Retrieves a page of the groups the caller is a member of.
// @Tags groups
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} ListResponse{data=[]dto.GroupResponse}
// @Security BearerAuth
// @Router /groups [get]
func (h *groupHandler) listGroups(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	groups, total, err := h.groupService.ListUserGroups(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, dto.ToListGroupResponse(groups), params.Page, params.Limit, total)
}

// getGroup godoc
// @Summary Get a group
// @Description Retrieves a group the caller is a member of.
// @Tags groups
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {object} DataResponse{data=dto.GroupResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{group_id} [get]
func (h *groupHandler) getGroup(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	group, err := h.groupService.GetGroupByID(c.Request.Context(), c.Param("group_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToGroupResponse(group))
}

// updateGroup godoc
// @Summary Update a group
// @Description Applies a partial update to a group. Requires the ADMIN role.
// @Tags groups
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param group body dto.UpdateGroupRequest true "Fields to update"
// @Success 200 {object} MessageResponse{data=dto.GroupResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{group_id} [put]
func (h *groupHandler) updateGroup(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	group, err := h.groupService.UpdateGroup(c.Request.Context(), c.Param("group_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, dto.ToGroupResponse(group), "group updated")
}

// deactivateGroup godoc
// @Summary Deactivate a group
// @Description Soft-deletes a group. Requires the ADMIN role.
// @Tags groups
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{group_id} [delete]
func (h *groupHandler) deactivateGroup(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.groupService.DeactivateGroup(c.Request.Context(), c.Param("group_id"), userID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, nil, "group deactivated")
}

// addUser godoc
// @Summary Add a user to a group
// @Description Adds or updates a membership with the given role. Requires the ADMIN role.
// @Tags groups
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param membership body dto.AddUserToGroupRequest true "User and role"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{group_id}/users [post]
func (h *groupHandler) addUser(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.AddUserToGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if err := h.groupService.AddUserToGroup(c.Request.Context(), userID, req.UserID, c.Param("group_id"), req.Role); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, nil, "user added to group")
}

// listUsers godoc
// @Summary List a group's members
// @Description Lists the group's memberships with their roles.
// @Tags groups
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {object} DataResponse{data=[]dto.UserGroupResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{group_id}/users [get]
func (h *groupHandler) listUsers(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	memberships, err := h.groupService.ListGroupUsers(c.Request.Context(), c.Param("group_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToListUserGroupResponse(memberships))
}

// removeUser godoc
// @Summary Remove a user from a group
// @Description Removes a membership. Members may remove themselves; removing others requires the ADMIN role. The last ADMIN cannot be removed.
// @Tags groups
// @Produce json
// @Param group_id path string true "Group ID"
// @Param user_id path string true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{group_id}/users/{user_id} [delete]
func (h *groupHandler) removeUser(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.groupService.RemoveUserFromGroup(c.Request.Context(), userID, c.Param("user_id"), c.Param("group_id")); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, nil, "user removed from group")
}

// getConfiguration godoc
// @Summary Get a group's accounting configuration
// @Description Retrieves the group's accounting configuration.
// @Tags groups
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {object} DataResponse{data=dto.ConfigurationResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{group_id}/configuration [get]
func (h *groupHandler) getConfiguration(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	cfg, err := h.groupService.GetConfiguration(c.Request.Context(), c.Param("group_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToConfigurationResponse(cfg))
}

// updateConfiguration godoc
// @Summary Update a group's accounting configuration
// @Description Applies a partial update to the configuration. Requires the ADMIN role.
// @Tags groups
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param configuration body dto.UpdateConfigurationRequest true "Fields to update"
// @Success 200 {object} MessageResponse{data=dto.ConfigurationResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{group_id}/configuration [put]
func (h *groupHandler) updateConfiguration(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	cfg, err := h.groupService.UpdateConfiguration(c.Request.Context(), c.Param("group_id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, dto.ToConfigurationResponse(cfg), "configuration updated")
}
