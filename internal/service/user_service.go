package service

import (
	"context"
	"strings"
	"time"

	"github.com/autoluxe/internal/authz"
	"github.com/autoluxe/internal/cache"
	"github.com/autoluxe/internal/config"
	"github.com/autoluxe/internal/logger"
	"github.com/autoluxe/internal/models"
	"github.com/autoluxe/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Caller 当前请求的用户身份
type Caller struct {
	UserID  string
	IsAdmin bool
}

// UpdateUserInput 用户更新输入（nil 表示不修改）
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	IsAdmin  *bool
}

// UserService 用户管理服务
type UserService struct {
	userRepo repository.UserRepository
	authz    *authz.Service
	policy   config.PasswordPolicyConfig
}

// NewUserService 创建用户管理服务
func NewUserService(userRepo repository.UserRepository, authzService *authz.Service, policy config.PasswordPolicyConfig) *UserService {
	return &UserService{
		userRepo: userRepo,
		authz:    authzService,
		policy:   policy,
	}
}

// List 用户列表
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, _, err := s.userRepo.List(ctx, repository.UserListFilter{})
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// Get 用户详情（本人或管理员）
func (s *UserService) Get(ctx context.Context, caller Caller, id string) (*models.User, error) {
	id = models.NormalizeObjectID(id)
	if !caller.IsAdmin && caller.UserID != id {
		return nil, ErrForbidden
	}
	return s.load(ctx, id)
}

// Update 更新用户（本人或管理员，仅管理员可修改管理员标记）
func (s *UserService) Update(ctx context.Context, caller Caller, id string, input UpdateUserInput) (*models.User, error) {
	id = models.NormalizeObjectID(id)
	if !caller.IsAdmin && caller.UserID != id {
		return nil, ErrForbidden
	}
	if input.IsAdmin != nil && !caller.IsAdmin {
		return nil, ErrForbidden
	}
	if input.Name == nil && input.Email == nil && input.Password == nil && input.IsAdmin == nil {
		return nil, ErrProfileEmpty
	}
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrUserNameRequired
		}
		user.Name = name
	}
	if input.Email != nil {
		normalized, err := normalizeEmail(*input.Email)
		if err != nil {
			return nil, err
		}
		if normalized != user.Email {
			exist, err := s.userRepo.GetByEmail(ctx, normalized)
			if err != nil {
				return nil, err
			}
			if exist != nil && exist.ID != user.ID {
				return nil, ErrEmailExists
			}
			user.Email = normalized
		}
	}
	credentialsChanged := false
	if input.Password != nil {
		if err := validatePassword(s.policy, *input.Password); err != nil {
			return nil, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		user.PasswordHash = string(hashed)
		user.TokenVersion++
		user.TokenInvalidBefore = &now
		credentialsChanged = true
	}
	roleChanged := false
	if input.IsAdmin != nil && *input.IsAdmin != user.IsAdmin {
		user.IsAdmin = *input.IsAdmin
		roleChanged = true
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if roleChanged {
		s.syncRole(user)
	}
	if credentialsChanged || roleChanged {
		if err := cache.DelUserAuthState(ctx, user.ID); err != nil {
			logger.Warnw("user_auth_state_invalidate_failed", "user_id", user.ID, "error", err)
		}
	}
	return user, nil
}

// Delete 删除用户（管理员，不可删除自己）
func (s *UserService) Delete(ctx context.Context, caller Caller, id string) error {
	id = models.NormalizeObjectID(id)
	if !models.IsObjectID(id) {
		return ErrNotFound
	}
	if caller.UserID == id {
		return ErrCannotDeleteSelf
	}
	affected, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	if s.authz != nil {
		if err := s.authz.SyncUserRole(id, false); err != nil {
			logger.Warnw("user_delete_revoke_role_failed", "user_id", id, "error", err)
		}
	}
	if err := cache.DelUserAuthState(ctx, id); err != nil {
		logger.Warnw("user_auth_state_invalidate_failed", "user_id", id, "error", err)
	}
	return nil
}

// SyncAdminRoles 启动时将全部管理员绑定到管理员角色
func (s *UserService) SyncAdminRoles(ctx context.Context) error {
	if s.authz == nil {
		return nil
	}
	admins, err := s.userRepo.ListAdmins(ctx)
	if err != nil {
		return err
	}
	for i := range admins {
		if err := s.authz.SyncUserRole(admins[i].ID, true); err != nil {
			return err
		}
	}
	return nil
}

func (s *UserService) load(ctx context.Context, id string) (*models.User, error) {
	if !models.IsObjectID(id) {
		return nil, ErrNotFound
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *UserService) syncRole(user *models.User) {
	if s.authz == nil {
		return
	}
	if err := s.authz.SyncUserRole(user.ID, user.IsAdmin); err != nil {
		logger.Warnw("user_sync_role_failed", "user_id", user.ID, "is_admin", user.IsAdmin, "error", err)
	}
}
