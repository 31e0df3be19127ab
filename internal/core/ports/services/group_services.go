package services

import (
	"context"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

// GroupAuthorizerSvc checks whether a user may act on an economic group.
// Most services depend on this rather than on the full group facade.
type GroupAuthorizerSvc interface {
	// AuthorizeUserAction returns apperrors.ErrForbidden when the user has
	// no membership (or an insufficient role) for the group.
	AuthorizeUserAction(ctx context.Context, userID, groupID string, requiredRole domain.UserGroupRole) error
}

// GroupReaderSvc exposes group lookups to dependent services.
type GroupReaderSvc interface {
	// FindGroupByID retrieves a group by ID without an access check.
	FindGroupByID(ctx context.Context, groupID string) (*domain.EconomicGroup, error)
}

// GroupSvcFacade is the full economic group service surface.
type GroupSvcFacade interface {
	GroupAuthorizerSvc
	GroupReaderSvc

	// CreateGroup provisions a new group with its default configuration,
	// empty chart and the creator's ADMIN membership, atomically.
	CreateGroup(ctx context.Context, req dto.CreateGroupRequest, creatorUserID string) (*domain.EconomicGroup, error)

	// GetGroupByID retrieves a group the user is a member of.
	GetGroupByID(ctx context.Context, groupID, userID string) (*domain.EconomicGroup, error)

	// ListUserGroups retrieves a page of the user's groups with the total count.
	ListUserGroups(ctx context.Context, userID string, params dto.ListParams) ([]domain.EconomicGroup, int, error)

	// UpdateGroup applies a partial update to a group.
	UpdateGroup(ctx context.Context, groupID string, req dto.UpdateGroupRequest, userID string) (*domain.EconomicGroup, error)

	// DeactivateGroup soft-deletes a group.
	DeactivateGroup(ctx context.Context, groupID, userID string) error

	// AddUserToGroup adds targetUserID to the group with the given role.
	AddUserToGroup(ctx context.Context, addingUserID, targetUserID, groupID string, role domain.UserGroupRole) error

	// RemoveUserFromGroup removes targetUserID's membership.
	RemoveUserFromGroup(ctx context.Context, removingUserID, targetUserID, groupID string) error

	// ListGroupUsers lists the group's memberships.
	ListGroupUsers(ctx context.Context, groupID, userID string) ([]domain.UserGroup, error)

	// GetConfiguration retrieves the group's accounting configuration.
	GetConfiguration(ctx context.Context, groupID, userID string) (*domain.AccountingConfiguration, error)

	// UpdateConfiguration applies a partial update to the configuration.
	UpdateConfiguration(ctx context.Context, groupID string, req dto.UpdateConfigurationRequest, userID string) (*domain.AccountingConfiguration, error)
}
