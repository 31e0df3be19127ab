package repositories

import (
	"context"
	"time"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
)

// GroupReader defines read operations for economic group data.
type GroupReader interface {
	// FindGroupByID retrieves a group by its unique identifier.
	FindGroupByID(ctx context.Context, groupID string) (*domain.EconomicGroup, error)

	// ListGroupsByUserID retrieves a page of groups the user belongs to,
	// together with the total count.
	ListGroupsByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.EconomicGroup, int, error)

	// FindUserGroupRole retrieves a user's membership record for a group.
	FindUserGroupRole(ctx context.Context, userID, groupID string) (*domain.UserGroup, error)
}

// GroupWriter defines write operations for economic group data.
type GroupWriter interface {
	// ProvisionGroup persists a new group together with the creator's ADMIN
	// membership, the default accounting configuration and an empty chart of
	// accounts, all within a single database transaction.
	ProvisionGroup(ctx context.Context, group domain.EconomicGroup, membership domain.UserGroup, config domain.AccountingConfiguration, chart domain.ChartOfAccounts) error

	// UpdateGroup updates a group's mutable fields.
	UpdateGroup(ctx context.Context, group domain.EconomicGroup) error

	// DeactivateGroup marks a group as inactive.
	DeactivateGroup(ctx context.Context, groupID string, userID string, now time.Time) error
}

// GroupMembershipRepository manages UserGroup membership records.
type GroupMembershipRepository interface {
	// AddUserToGroup inserts or updates a membership record.
	AddUserToGroup(ctx context.Context, membership domain.UserGroup) error

	// RemoveUserFromGroup deletes a membership record.
	RemoveUserFromGroup(ctx context.Context, userID, groupID string) error

	// ListUsersByGroupID retrieves all memberships of a group.
	ListUsersByGroupID(ctx context.Context, groupID string) ([]domain.UserGroup, error)
}

// ConfigurationRepository manages per-group accounting configurations.
type ConfigurationRepository interface {
	// FindConfigurationByGroupID retrieves the group's accounting configuration.
	FindConfigurationByGroupID(ctx context.Context, groupID string) (*domain.AccountingConfiguration, error)

	// UpdateConfiguration updates the group's accounting configuration.
	UpdateConfiguration(ctx context.Context, config domain.AccountingConfiguration) error
}

// GroupRepositoryFacade combines all group-related repository interfaces.
type GroupRepositoryFacade interface {
	GroupReader
	GroupWriter
	GroupMembershipRepository
	ConfigurationRepository
}
