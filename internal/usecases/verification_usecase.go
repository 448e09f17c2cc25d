package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"college-portal.backend/internal/domain/entities"
	domainerrors "college-portal.backend/internal/domain/errors"
	"college-portal.backend/internal/domain/repositories"
	"college-portal.backend/pkg/jwt"
	"college-portal.backend/pkg/logger"
	"college-portal.backend/pkg/metrics"
	"college-portal.backend/pkg/utils"
)

// VerificationUsecase lists and decides registration requests
type VerificationUsecase struct {
	uow         repositories.UnitOfWork
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	requestRepo repositories.VerificationRequestRepository
	jwtService  *jwt.JWTService
}

// NewVerificationUsecase creates a new verification usecase
func NewVerificationUsecase(
	uow repositories.UnitOfWork,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	requestRepo repositories.VerificationRequestRepository,
	jwtService *jwt.JWTService,
) *VerificationUsecase {
	return &VerificationUsecase{
		uow:         uow,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		requestRepo: requestRepo,
		jwtService:  jwtService,
	}
}

// ListPending returns one page of undecided requests, oldest first
func (u *VerificationUsecase) ListPending(ctx context.Context, page, limit int) ([]*entities.VerificationRequest, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, limit)
	items, total, err := u.requestRepo.ListPending(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return items, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

// Decide approves or rejects a pending registration. callerID is the
// authenticated approver; a non-empty input.ApproverID must match it.
func (u *VerificationUsecase) Decide(ctx context.Context, callerID uuid.UUID, input *entities.DecideInput) (*entities.DecisionResult, error) {
	if input.ApproverID != uuid.Nil && input.ApproverID != callerID {
		return nil, fmt.Errorf("approverId does not match the authenticated user: %w", domainerrors.ErrForbidden)
	}
	input.Action = entities.DecisionAction(strings.ToUpper(strings.TrimSpace(string(input.Action))))
	if !input.Action.Valid() {
		return nil, fmt.Errorf("action must be APPROVE or REJECT: %w", domainerrors.ErrValidation)
	}

	approver, err := u.userRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, fmt.Errorf("approver not found: %w", domainerrors.ErrNotFound)
		}
		return nil, err
	}
	if !approver.IsApproved() {
		return nil, fmt.Errorf("approver is not approved: %w", domainerrors.ErrForbidden)
	}
	if !approver.CanDecideRequests() {
		return nil, fmt.Errorf("only HOD or PROFESSOR may decide requests: %w", domainerrors.ErrForbidden)
	}

	request, err := u.requestRepo.GetByID(ctx, input.RequestID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, fmt.Errorf("verification request not found: %w", domainerrors.ErrNotFound)
		}
		return nil, err
	}
	if !request.CanBeDecided(input.Action) {
		return nil, domainerrors.ErrAlreadyProcessed
	}

	reason := null.NewString(strings.TrimSpace(input.Reason), strings.TrimSpace(input.Reason) != "")

	var result *entities.DecisionResult
	if input.Action == entities.ActionApprove {
		result, err = u.approve(ctx, approver, request, reason)
	} else {
		result, err = u.reject(ctx, approver, request, reason)
	}
	if err != nil {
		return nil, err
	}

	metrics.VerificationDecisionsTotal.WithLabelValues(string(input.Action)).Inc()
	return result, nil
}

func (u *VerificationUsecase) approve(ctx context.Context, approver *entities.User, request *entities.VerificationRequest, reason null.String) (*entities.DecisionResult, error) {
	var pair *jwt.TokenPair
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.requestRepo.MarkDecided(txCtx, request.ID, entities.StatusApproved, approver.ID, reason); err != nil {
			return err
		}
		if err := u.userRepo.UpdateVerificationStatus(txCtx, request.UserID, entities.StatusApproved); err != nil {
			return err
		}

		issued, err := u.jwtService.IssuePair(request.UserID)
		if err != nil {
			return issueError(err)
		}
		if err := u.userRepo.SetRefreshToken(txCtx, request.UserID, issued.RefreshToken); err != nil {
			return err
		}
		pair = issued
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.TokensIssuedTotal.WithLabelValues("approval").Inc()

	logger.Info(ctx, "Registration approved",
		zap.String("request_id", request.ID.String()),
		zap.String("subject_id", request.UserID.String()),
		zap.String("approver_id", approver.ID.String()),
	)

	user, err := u.userRepo.GetByID(ctx, request.UserID)
	if err != nil {
		return nil, err
	}
	profile, err := u.profileRepo.GetByUserID(ctx, user.ID, user.Role)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	view := entities.NewUserView(user, profile)
	return &entities.DecisionResult{
		RequestID: request.ID,
		Status:    entities.StatusApproved,
		User:      view,
		Tokens: &entities.AuthResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		},
	}, nil
}

// reject purges the subject entirely. Marking the request first makes a
// concurrent decision on the same request lose with ErrAlreadyProcessed.
func (u *VerificationUsecase) reject(ctx context.Context, approver *entities.User, request *entities.VerificationRequest, reason null.String) (*entities.DecisionResult, error) {
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.requestRepo.MarkDecided(txCtx, request.ID, entities.StatusRejected, approver.ID, reason); err != nil {
			return err
		}
		if err := u.profileRepo.DeleteByUserID(txCtx, request.UserID); err != nil {
			return err
		}
		if err := u.requestRepo.DeleteByUserID(txCtx, request.UserID); err != nil {
			return err
		}
		return u.userRepo.Delete(txCtx, request.UserID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Registration rejected, user purged",
		zap.String("request_id", request.ID.String()),
		zap.String("subject_id", request.UserID.String()),
		zap.String("approver_id", approver.ID.String()),
		zap.String("reason", reason.String),
	)

	return &entities.DecisionResult{
		RequestID: request.ID,
		Status:    entities.StatusRejected,
	}, nil
}
