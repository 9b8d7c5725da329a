package user

import (
	"errors"
	"time"

	"github.com/inkstone/core/internal/models"
	"github.com/inkstone/core/internal/pkg/apperr"
	jwtpkg "github.com/inkstone/core/internal/pkg/jwt"
	sessionpkg "github.com/inkstone/core/internal/pkg/session"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service is the credential store: it owns password hashing/verification and
// session token issuance. Raw secrets never leave this package unhashed.
type Service struct {
	db               *gorm.DB
	signer           *jwtpkg.Signer
	bcryptCost       int
	firstUserIsAdmin bool
	logger           *zap.Logger
}

func NewService(db *gorm.DB, signer *jwtpkg.Signer, bcryptCost int, firstUserIsAdmin bool, logger *zap.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, signer: signer, bcryptCost: bcryptCost, firstUserIsAdmin: firstUserIsAdmin, logger: logger}
}

// Register creates a user with a salted hash of the raw secret and issues a
// session token. Duplicate emails are a Conflict.
func (s *Service) Register(dto *RegisterDTO, ip, ua string) (string, *models.UserModel, error) {
	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("email = ?", dto.Email).Count(&count).Error; err != nil {
		return "", nil, apperr.FromStore("check email", err)
	}
	if count > 0 {
		return "", nil, apperr.Conflict("user already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.KindInternal, "hash password", err)
	}

	role := models.RoleMember
	if s.firstUserIsAdmin {
		var total int64
		if err := s.db.Model(&models.UserModel{}).Count(&total).Error; err != nil {
			return "", nil, apperr.FromStore("count users", err)
		}
		if total == 0 {
			role = models.RoleAdmin
		}
	}

	u := models.UserModel{
		Name:     dto.Name,
		Email:    dto.Email,
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if err := s.db.Create(&u).Error; err != nil {
		return "", nil, apperr.FromStore("create user", err)
	}

	token, _, err := sessionpkg.Issue(s.db, s.signer, u.ID, ip, ua)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.KindInternal, "issue token", err)
	}
	return token, &u, nil
}

// errInvalidCredentials is the single generic failure for authentication.
// No-such-user, deactivated account and wrong secret are indistinguishable to
// the caller so the response never leaks which check failed.
var errInvalidCredentials = apperr.Unauthorized("invalid credentials")

// Authenticate verifies an email/secret pair and issues a session token.
func (s *Service) Authenticate(email, password, ip, ua string) (string, *models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, errInvalidCredentials
		}
		return "", nil, apperr.FromStore("find user", err)
	}
	if !u.IsActive {
		return "", nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", nil, errInvalidCredentials
	}

	// Best effort: a failed last-login write must not block the login.
	now := time.Now()
	err := s.db.Model(&u).Updates(map[string]interface{}{
		"last_login_time": now,
		"last_login_ip":   ip,
	}).Error
	if err != nil {
		s.logger.Warn("failed to record last login",
			zap.String("user_id", u.ID),
			zap.Error(err),
		)
	} else {
		u.LastLoginTime = &now
		u.LastLoginIP = ip
	}

	token, _, err := sessionpkg.Issue(s.db, s.signer, u.ID, ip, ua)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.KindInternal, "issue token", err)
	}
	return token, &u, nil
}

// GetByID fetches a user.
func (s *Service) GetByID(id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.FromStore("get user", err)
	}
	return &u, nil
}

// UpdateProfile patches the caller's own profile. An email change re-checks
// uniqueness against all other users.
func (s *Service) UpdateProfile(id string, dto *UpdateProfileDTO) (*models.UserModel, error) {
	u, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Email != nil && *dto.Email != u.Email {
		var count int64
		if err := s.db.Model(&models.UserModel{}).
			Where("email = ? AND id <> ?", *dto.Email, id).Count(&count).Error; err != nil {
			return nil, apperr.FromStore("check email", err)
		}
		if count > 0 {
			return nil, apperr.Conflict("email already in use")
		}
		updates["email"] = *dto.Email
		u.Email = *dto.Email
	}
	if dto.Name != nil {
		updates["name"] = *dto.Name
		u.Name = *dto.Name
	}
	if dto.Bio != nil {
		updates["bio"] = *dto.Bio
		u.Bio = *dto.Bio
	}
	if dto.Avatar != nil {
		updates["avatar"] = *dto.Avatar
		u.Avatar = *dto.Avatar
	}
	if len(updates) == 0 {
		return u, nil
	}
	if err := s.db.Model(u).Updates(updates).Error; err != nil {
		return nil, apperr.FromStore("update profile", err)
	}
	return u, nil
}

// ChangePassword replaces the stored hash after verifying the current secret.
// Every other live session of the user is revoked.
func (s *Service) ChangePassword(id, keepSessionID, current, next string) error {
	u, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(current)); err != nil {
		return apperr.Unauthorized("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.bcryptCost)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "hash password", err)
	}
	if err := s.db.Model(u).Update("password", string(hash)).Error; err != nil {
		return apperr.FromStore("update password", err)
	}

	return sessionpkg.RevokeAllExcept(s.db, id, keepSessionID)
}

// PublicIdentity maps a user onto its public-safe shape.
func PublicIdentity(u *models.UserModel) Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
