package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/contabilis/group_ledger_app/internal/apperrors"
	"github.com/contabilis/group_ledger_app/internal/core/domain"
	portsrepo "github.com/contabilis/group_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/dto"
	"github.com/google/uuid"
)

// GroupService handles business logic for economic groups, memberships and
// the per-group accounting configuration.
type GroupService struct {
	BaseService
	groupRepo portsrepo.GroupRepositoryFacade
	userRepo  portsrepo.UserRepositoryFacade
}

// NewGroupService creates a new GroupService.
func NewGroupService(gr portsrepo.GroupRepositoryFacade, ur portsrepo.UserRepositoryFacade) portssvc.GroupSvcFacade {
	return &GroupService{
		groupRepo: gr,
		userRepo:  ur,
	}
}

// Ensure GroupService implements the portssvc.GroupSvcFacade interface
var _ portssvc.GroupSvcFacade = (*GroupService)(nil)

// AuthorizeUserAction checks the caller's membership in the group and, when
// requiredRole is ADMIN, that the membership carries the ADMIN role.
func (s *GroupService) AuthorizeUserAction(ctx context.Context, userID, groupID string, requiredRole domain.UserGroupRole) error {
	membership, err := s.groupRepo.FindUserGroupRole(ctx, userID, groupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewForbiddenError("user is not a member of this group")
		}
		return fmt.Errorf("failed to check group membership: %w", err)
	}
	if requiredRole == domain.RoleAdmin && membership.Role != domain.RoleAdmin {
		return apperrors.NewForbiddenError("this action requires the ADMIN role")
	}
	return nil
}

// FindGroupByID retrieves a group without an access check. Dependent
// services use it after running their own authorization.
func (s *GroupService) FindGroupByID(ctx context.Context, groupID string) (*domain.EconomicGroup, error) {
	return s.groupRepo.FindGroupByID(ctx, groupID)
}

// CreateGroup provisions a group, the creator's ADMIN membership, the
// default accounting configuration and an empty chart in one transaction.
func (s *GroupService) CreateGroup(ctx context.Context, req dto.CreateGroupRequest, creatorUserID string) (*domain.EconomicGroup, error) {
	if !domain.IsSupportedCountry(req.MainCountry) {
		return nil, apperrors.NewValidationFailedError("country " + req.MainCountry + " is not supported")
	}
	if !domain.IsCurrencyAllowed(req.MainCountry, req.BaseCurrency) {
		return nil, apperrors.NewBusinessRuleError(apperrors.RuleInvalidCurrencyForCountry,
			fmt.Sprintf("currency %s is not allowed for country %s (allowed: %s)",
				req.BaseCurrency, req.MainCountry, strings.Join(domain.AllowedCurrencies(req.MainCountry), ", ")))
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	group := domain.EconomicGroup{
		GroupID:      uuid.NewString(),
		Name:         req.Name,
		MainCountry:  req.MainCountry,
		BaseCurrency: req.BaseCurrency,
		IsActive:     true,
		AuditFields:  audit,
	}

	membership := domain.UserGroup{
		UserID:   creatorUserID,
		GroupID:  group.GroupID,
		Role:     domain.RoleAdmin,
		JoinedAt: now,
	}

	config := domain.DefaultAccountingConfiguration(group.GroupID)
	config.ConfigurationID = uuid.NewString()
	config.AuditFields = audit

	chart := domain.ChartOfAccounts{
		ChartID:     uuid.NewString(),
		GroupID:     group.GroupID,
		Name:        group.Name + " - Chart of Accounts",
		IsActive:    true,
		AuditFields: audit,
	}

	if err := s.groupRepo.ProvisionGroup(ctx, group, membership, config, chart); err != nil {
		s.LogError(ctx, err, "Failed to provision economic group", slog.String("group_name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Economic group provisioned",
		slog.String("group_id", group.GroupID),
		slog.String("creator_user_id", creatorUserID))
	return &group, nil
}

// GetGroupByID retrieves a group the caller is a member of.
func (s *GroupService) GetGroupByID(ctx context.Context, groupID, userID string) (*domain.EconomicGroup, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUserAction(ctx, userID, groupID, domain.RoleMember); err != nil {
		return nil, err
	}
	return group, nil
}

// ListUserGroups retrieves a page of the groups the user belongs to.
func (s *GroupService) ListUserGroups(ctx context.Context, userID string, params dto.ListParams) ([]domain.EconomicGroup, int, error) {
	return s.groupRepo.ListGroupsByUserID(ctx, userID, params.Limit, params.Offset())
}

// UpdateGroup applies a partial update. ADMIN only.
func (s *GroupService) UpdateGroup(ctx context.Context, groupID string, req dto.UpdateGroupRequest, userID string) (*domain.EconomicGroup, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUserAction(ctx, userID, groupID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.IsActive != nil {
		group.IsActive = *req.IsActive
	}
	group.LastUpdatedAt = time.Now()
	group.LastUpdatedBy = userID

	if err := s.groupRepo.UpdateGroup(ctx, *group); err != nil {
		s.LogError(ctx, err, "Failed to update economic group", slog.String("group_id", groupID))
		return nil, err
	}
	return group, nil
}

// DeactivateGroup soft-deletes a group. ADMIN only.
func (s *GroupService) DeactivateGroup(ctx context.Context, groupID, userID string) error {
	if _, err := s.groupRepo.FindGroupByID(ctx, groupID); err != nil {
		return err
	}
	if err := s.AuthorizeUserAction(ctx, userID, groupID, domain.RoleAdmin); err != nil {
		return err
	}
	return s.groupRepo.DeactivateGroup(ctx, groupID, userID, time.Now())
}

// AddUserToGroup adds targetUserID to the group. ADMIN only. Adding an
// existing member updates the role.
func (s *GroupService) AddUserToGroup(ctx context.Context, addingUserID, targetUserID, groupID string, role domain.UserGroupRole) error {
	if _, err := s.groupRepo.FindGroupByID(ctx, groupID); err != nil {
		return err
	}
	if err := s.AuthorizeUserAction(ctx, addingUserID, groupID, domain.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("user " + targetUserID + " not found")
		}
		return fmt.Errorf("failed to validate target user: %w", err)
	}

	membership := domain.UserGroup{
		UserID:   targetUserID,
		GroupID:  groupID,
		Role:     role,
		JoinedAt: time.Now(),
	}
	if err := s.groupRepo.AddUserToGroup(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add user to group",
			slog.String("target_user_id", targetUserID),
			slog.String("group_id", groupID))
		return err
	}
	s.LogInfo(ctx, "User added to group",
		slog.String("target_user_id", targetUserID),
		slog.String("group_id", groupID),
		slog.String("role", string(role)))
	return nil
}

// RemoveUserFromGroup removes a membership. Members may remove themselves;
// removing someone else requires ADMIN. The last ADMIN cannot leave.
func (s *GroupService) RemoveUserFromGroup(ctx context.Context, removingUserID, targetUserID, groupID string) error {
	if _, err := s.groupRepo.FindGroupByID(ctx, groupID); err != nil {
		return err
	}
	requiredRole := domain.RoleAdmin
	if removingUserID == targetUserID {
		requiredRole = domain.RoleMember
	}
	if err := s.AuthorizeUserAction(ctx, removingUserID, groupID, requiredRole); err != nil {
		return err
	}

	target, err := s.groupRepo.FindUserGroupRole(ctx, targetUserID, groupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("user " + targetUserID + " is not a member of this group")
		}
		return fmt.Errorf("failed to check target membership: %w", err)
	}

	if target.Role == domain.RoleAdmin {
		members, err := s.groupRepo.ListUsersByGroupID(ctx, groupID)
		if err != nil {
			return fmt.Errorf("failed to list group members: %w", err)
		}
		adminCount := 0
		for _, m := range members {
			if m.Role == domain.RoleAdmin {
				adminCount++
			}
		}
		if adminCount <= 1 {
			return apperrors.NewValidationFailedError("cannot remove the last ADMIN of a group")
		}
	}

	return s.groupRepo.RemoveUserFromGroup(ctx, targetUserID, groupID)
}

// ListGroupUsers lists the group's memberships. Members only.
func (s *GroupService) ListGroupUsers(ctx context.Context, groupID, userID string) ([]domain.UserGroup, error) {
	if _, err := s.groupRepo.FindGroupByID(ctx, groupID); err != nil {
		return nil, err
	}
	if err := s.AuthorizeUserAction(ctx, userID, groupID, domain.RoleMember); err != nil {
		return nil, err
	}
	return s.groupRepo.ListUsersByGroupID(ctx, groupID)
}

// GetConfiguration retrieves the group's accounting configuration.
func (s *GroupService) GetConfiguration(ctx context.Context, groupID, userID string) (*domain.AccountingConfiguration, error) {
	if _, err := s.groupRepo.FindGroupByID(ctx, groupID); err != nil {
		return nil, err
	}
	if err := s.AuthorizeUserAction(ctx, userID, groupID, domain.RoleMember); err != nil {
		return nil, err
	}
	return s.groupRepo.FindConfigurationByGroupID(ctx, groupID)
}

// UpdateConfiguration applies a partial update to the configuration. ADMIN only.
func (s *GroupService) UpdateConfiguration(ctx context.Context, groupID string, req dto.UpdateConfigurationRequest, userID string) (*domain.AccountingConfiguration, error) {
	if _, err := s.groupRepo.FindGroupByID(ctx, groupID); err != nil {
		return nil, err
	}
	if err := s.AuthorizeUserAction(ctx, userID, groupID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	config, err := s.groupRepo.FindConfigurationByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if req.MinimumApprovalAmount != nil {
		if req.MinimumApprovalAmount.IsNegative() {
			return nil, apperrors.NewValidationFailedError("minimumApprovalAmount cannot be negative")
		}
		config.MinimumApprovalAmount = *req.MinimumApprovalAmount
	}
	if req.AmountDecimals != nil {
		config.AmountDecimals = *req.AmountDecimals
	}
	if req.ExchangeRateDecimals != nil {
		config.ExchangeRateDecimals = *req.ExchangeRateDecimals
	}
	if req.AllowUnbalancedEntries != nil {
		config.AllowUnbalancedEntries = *req.AllowUnbalancedEntries
	}
	config.LastUpdatedAt = time.Now()
	config.LastUpdatedBy = userID

	if err := s.groupRepo.UpdateConfiguration(ctx, *config); err != nil {
		s.LogError(ctx, err, "Failed to update accounting configuration", slog.String("group_id", groupID))
		return nil, err
	}
	return config, nil
}
