package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"college-portal.backend/internal/domain/entities"
	domainerrors "college-portal.backend/internal/domain/errors"
	"college-portal.backend/internal/domain/repositories"
	"college-portal.backend/pkg/crypto"
	"college-portal.backend/pkg/logger"
	"college-portal.backend/pkg/utils"
)

// BootstrapInput describes the first HOD of a department
type BootstrapInput struct {
	DepartmentCode string
	DepartmentName string
	Name           string
	Email          string
	Password       string
}

// BootstrapUsecase seeds approvers. Registration approval needs an approved
// HOD or PROFESSOR, so the first one is created outside the HTTP flow.
type BootstrapUsecase struct {
	uow            repositories.UnitOfWork
	userRepo       repositories.UserRepository
	profileRepo    repositories.ProfileRepository
	departmentRepo repositories.DepartmentRepository
	hasher         *crypto.Hasher
}

// NewBootstrapUsecase creates a new bootstrap usecase
func NewBootstrapUsecase(
	uow repositories.UnitOfWork,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	departmentRepo repositories.DepartmentRepository,
	hasher *crypto.Hasher,
) *BootstrapUsecase {
	return &BootstrapUsecase{
		uow:            uow,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		departmentRepo: departmentRepo,
		hasher:         hasher,
	}
}

// SeedHod creates the department when it is missing and an APPROVED HOD for
// it. A department that already has an HOD is a conflict.
func (u *BootstrapUsecase) SeedHod(ctx context.Context, input *BootstrapInput) (*entities.UserView, error) {
	reg := &entities.RegisterInput{
		Name:       input.Name,
		Email:      input.Email,
		Password:   input.Password,
		Role:       entities.RoleHOD,
		Department: input.DepartmentCode,
	}
	reg.Normalize()
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := u.hasher.Hash(reg.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entities.User{
		ID:                 utils.GenerateUUIDv7(),
		Name:               reg.Name,
		Email:              reg.Email,
		PasswordHash:       passwordHash,
		Role:               entities.RoleHOD,
		VerificationStatus: entities.StatusApproved,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	var profile entities.RoleProfile
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		dept, err := u.ensureDepartment(txCtx, reg.Department, input.DepartmentName)
		if err != nil {
			return err
		}

		taken, err := u.profileRepo.HodExistsForDepartment(txCtx, dept.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("department %s already has an HOD: %w", dept.Code, domainerrors.ErrConflict)
		}

		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		profile = entities.NewHodProfile(user.ID, dept.ID)
		return u.profileRepo.Create(txCtx, profile)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "HOD bootstrapped",
		zap.String("user_id", user.ID.String()),
		zap.String("department", strings.ToUpper(reg.Department)),
	)
	return entities.NewUserView(user, &profile), nil
}

func (u *BootstrapUsecase) ensureDepartment(ctx context.Context, code, name string) (*entities.Department, error) {
	dept, err := u.departmentRepo.GetByCode(ctx, code)
	if err == nil {
		return dept, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.ToUpper(code)
	}
	dept = &entities.Department{Code: code, Name: name}
	if err := u.departmentRepo.Create(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}
