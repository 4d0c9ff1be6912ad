package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/internal/users"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/config"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/security"
)

type vendorProfileWriter interface {
	CreateProfile(ctx context.Context, tx *gorm.DB, vendor *models.Vendor) error
}

// RegisterService handles account onboarding. A vendor registration writes
// the user and the vendor profile in one transaction; the profile shares the
// user's id.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB             *db.Client
	Vendors        vendorProfileWriter
	PasswordConfig config.PasswordConfig
}

type registerService struct {
	db          *db.Client
	vendors     vendorProfileWriter
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if params.Vendors == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "vendors service required")
	}
	return &registerService{
		db:          params.DB,
		vendors:     params.Vendors,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if req.Role != enums.UserRoleCouple && req.Role != enums.UserRoleVendor {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role must be couple or vendor")
	}
	if req.Role == enums.UserRoleVendor && strings.TrimSpace(req.BusinessName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business name is required for vendor accounts")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.User
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			Phone:        req.Phone,
			Role:         req.Role,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		if req.Role == enums.UserRoleVendor {
			vendor := &models.Vendor{
				ID:           user.ID,
				BusinessName: strings.TrimSpace(req.BusinessName),
				CategoryID:   req.CategoryID,
				Location:     req.Location,
			}
			if err := s.vendors.CreateProfile(ctx, tx, vendor); err != nil {
				return err
			}
		}

		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users.FromModel(created), nil
}
