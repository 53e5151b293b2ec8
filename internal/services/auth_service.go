package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/pickupkart/internal/models"
	"github.com/example/pickupkart/internal/utils"
)

// Principal is an authenticated identity with its single effective role.
type Principal struct {
	ID        uuid.UUID       `json:"id"`
	FullName  string          `json:"full_name"`
	LoginName string          `json:"login_name"`
	Email     string          `json:"email"`
	Mobile    string          `json:"mobile"`
	Address   string          `json:"address"`
	Role      models.RoleName `json:"role"`
}

// IsAdmin reports whether the principal carries the ADMIN role.
func (p *Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// PrincipalFromUser derives a principal from a stored user. The role set
// always holds exactly one role in practice; the first one wins.
func PrincipalFromUser(user *models.User) *Principal {
	p := &Principal{
		ID:        user.ID,
		FullName:  user.FullName,
		LoginName: user.LoginName,
		Email:     user.Email,
		Mobile:    user.Mobile,
		Address:   user.Address,
	}
	if len(user.Roles) > 0 {
		p.Role = user.Roles[0].Name
	}
	return p
}

// AuthService verifies credentials and registers new accounts.
type AuthService struct {
	db *gorm.DB
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Login checks a login-name/password pair against the store. Unknown
// logins and password mismatches yield the same error.
func (s *AuthService) Login(loginName, password string) (*Principal, error) {
	db, cancel := withTimeout(s.db)
	defer cancel()

	var user models.User
	err := db.Preload("Roles").Where("login_name = ?", loginName).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storeError("look up user", err)
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return PrincipalFromUser(&user), nil
}

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	FullName  string
	LoginName string
	Password  string
	Email     string
	Mobile    string
	Address   string
	Role      models.RoleName
}

// Register creates a user with exactly one role. Unspecified roles
// default to CUSTOMER; requesting a role with no stored record fails.
func (s *AuthService) Register(input RegisterInput) (*Principal, error) {
	role := input.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if !role.Valid() {
		return nil, ErrUnknownRole
	}

	db, cancel := withTimeout(s.db)
	defer cancel()

	var taken int64
	if err := db.Model(&models.User{}).Where("login_name = ?", input.LoginName).Count(&taken).Error; err != nil {
		return nil, storeError("check login name", err)
	}
	if taken > 0 {
		return nil, ErrDuplicateLogin
	}

	if err := db.Model(&models.User{}).Where("email = ?", input.Email).Count(&taken).Error; err != nil {
		return nil, storeError("check email", err)
	}
	if taken > 0 {
		return nil, ErrDuplicateEmail
	}

	var stored models.Role
	if err := db.Where("name = ?", role).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownRole
		}
		return nil, storeError("look up role", err)
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		FullName:     input.FullName,
		LoginName:    input.LoginName,
		PasswordHash: passwordHash,
		Mobile:       input.Mobile,
		Email:        input.Email,
		Address:      input.Address,
		Roles:        []models.Role{stored},
	}

	if err := db.Create(&user).Error; err != nil {
		// Unique indexes back the pre-checks against concurrent registrations.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateError(input)
		}
		return nil, storeError("create user", err)
	}

	return PrincipalFromUser(&user), nil
}

// duplicateError reports which unique constraint a registration lost a
// race on, by re-running the existence checks after the failed insert.
func (s *AuthService) duplicateError(input RegisterInput) error {
	db, cancel := withTimeout(s.db)
	defer cancel()

	var taken int64
	if err := db.Model(&models.User{}).Where("login_name = ?", input.LoginName).Count(&taken).Error; err == nil && taken > 0 {
		return ErrDuplicateLogin
	}
	if err := db.Model(&models.User{}).Where("email = ?", input.Email).Count(&taken).Error; err == nil && taken > 0 {
		return ErrDuplicateEmail
	}
	return ErrDuplicateLogin
}

// LoadPrincipal resolves a user ID to a principal with its current role.
// Token claims are advisory; callers use this to avoid stale-role access.
func (s *AuthService) LoadPrincipal(userID uuid.UUID) (*Principal, error) {
	db, cancel := withTimeout(s.db)
	defer cancel()

	var user models.User
	err := db.Preload("Roles").First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storeError("load principal", err)
	}
	return PrincipalFromUser(&user), nil
}
