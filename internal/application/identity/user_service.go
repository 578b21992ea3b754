package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	appaudit "github.com/samarth/backend/internal/application/audit"
	"github.com/samarth/backend/internal/application/uow"
	"github.com/samarth/backend/internal/domain/audit"
	"github.com/samarth/backend/internal/domain/identity"
	"github.com/samarth/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Default accounts created by InitUsers
const (
	DefaultSuperAdminUsername = "superadmin"
	DefaultAdminUsername      = "admin"
	DefaultPassword           = "password123"
)

// Messages returned by InitUsers
const (
	MsgUsersCreated     = "Super Admin and Admin created"
	MsgUsersInitialized = "Users already initialized"
)

// UserService manages operator accounts
type UserService struct {
	users  identity.UserRepository
	hasher identity.PasswordHasher
	policy *identity.Policy
	txs    uow.TransactionScope
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	users identity.UserRepository,
	hasher identity.PasswordHasher,
	policy *identity.Policy,
	txs uow.TransactionScope,
	logger *zap.Logger,
) *UserService {
	return &UserService{users: users, hasher: hasher, policy: policy, txs: txs, logger: logger}
}

// List returns a page of users ordered by creation
func (s *UserService) List(ctx context.Context, offset, limit int) ([]UserResponse, error) {
	users, err := s.users.List(ctx, shared.NewPage(offset, limit))
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out, nil
}

// Create adds an account. Only a super admin may create another super admin.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest, actor *identity.User) (*UserResponse, error) {
	role, ok := identity.ParseRole(req.Role)
	if !ok {
		return nil, shared.Invalid("Role must be SUPER_ADMIN or ADMIN")
	}
	if role == identity.RoleSuperAdmin {
		if err := s.policy.Authorize(identity.ActionUserCreateSuperUser, actor.Role); err != nil {
			return nil, err
		}
	}

	user, err := identity.NewUser(req.Username, req.Password, role, req.FullName, s.hasher)
	if err != nil {
		return nil, err
	}

	err = s.txs.Execute(ctx, func(repos uow.Repositories) error {
		if err := repos.Users().Create(ctx, user); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				return shared.Conflict("Username already registered")
			}
			return fmt.Errorf("create user: %w", err)
		}
		return appaudit.Append(ctx, repos.Audit(), &actor.ID, audit.ActionCreateUser,
			fmt.Sprintf("Created User %s (%s)", user.Username, user.Role))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", user.Role.String()),
	)
	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete removes an account. Nobody may delete themselves.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID, actor *identity.User) error {
	if id == actor.ID {
		return shared.Forbidden("Cannot delete yourself")
	}

	return s.txs.Execute(ctx, func(repos uow.Repositories) error {
		user, err := repos.Users().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NotFound("User not found")
			}
			return err
		}
		if err := repos.Users().Delete(ctx, id); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NotFound("User not found")
			}
			return fmt.Errorf("delete user: %w", err)
		}
		return appaudit.Append(ctx, repos.Audit(), &actor.ID, audit.ActionDeleteUser,
			"Deleted User "+user.Username)
	})
}

// InitUsers creates the default super admin and admin accounts once.
// A concurrent initializer losing the insert race reports already initialized.
func (s *UserService) InitUsers(ctx context.Context) (*InitUsersResult, error) {
	_, err := s.users.FindByUsername(ctx, DefaultSuperAdminUsername)
	if err == nil {
		return &InitUsersResult{Message: MsgUsersInitialized}, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	superAdmin, err := identity.NewUser(DefaultSuperAdminUsername, DefaultPassword, identity.RoleSuperAdmin, "Super Administrator", s.hasher)
	if err != nil {
		return nil, err
	}
	admin, err := identity.NewUser(DefaultAdminUsername, DefaultPassword, identity.RoleAdmin, "Project Administrator", s.hasher)
	if err != nil {
		return nil, err
	}

	err = s.txs.Execute(ctx, func(repos uow.Repositories) error {
		for _, u := range []*identity.User{superAdmin, admin} {
			if err := repos.Users().Create(ctx, u); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, shared.ErrAlreadyExists) {
		return &InitUsersResult{Message: MsgUsersInitialized}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("init users: %w", err)
	}

	s.logger.Warn("Default accounts created; change their passwords",
		zap.Strings("usernames", []string{DefaultSuperAdminUsername, DefaultAdminUsername}))
	return &InitUsersResult{Created: true, Message: MsgUsersCreated}, nil
}
