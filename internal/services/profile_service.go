package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"

	"freelance_backend/internal/logger"
	"freelance_backend/internal/models"
	"freelance_backend/internal/repositories"
	"freelance_backend/internal/services/dto"
	"freelance_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	normalizeBiosJob       = "normalize-bios"
	normalizeBiosBatchSize = 200
)

type ProfileService interface {
	GetProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error)
	UpdateBio(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	NormalizeBios(ctx context.Context, db *gorm.DB, dryRun bool) (*dto.NormalizeBiosReport, error)
}

type ProfileServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewProfileService(userRepo repositories.UserRepository) ProfileService {
	return &ProfileServiceImpl{
		userRepo: userRepo,
	}
}

// GetProfile отдаёт структурированный bio. Битый blob не ошибка: клиент получает пустой профиль.
func (s *ProfileServiceImpl) GetProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleProfileError(err)
	}

	bio, ok := models.DecodeBio(user.Bio)
	if !ok {
		logger.CtxWarn(db.Statement.Context, "malformed bio blob, serving empty default", "user_id", userID)
	}

	return buildProfileResponse(user, bio), nil
}

// UpdateBio заменяет поля профиля; незнакомые ключи старого blob остаются.
// Запрос уже провалидирован на уровне хендлера.
func (s *ProfileServiceImpl) UpdateBio(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleProfileError(err)
	}

	encoded, err := models.MergeBio(user.Bio, req.Bio)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdateBio(db, userID, encoded); err != nil {
		return nil, handleProfileError(err)
	}

	logger.CtxInfo(db.Statement.Context, "bio updated", "user_id", userID)
	return buildProfileResponse(user, req.Bio), nil
}

// NormalizeBios переписывает все bio в каноничной кодировке, сохраняя незнакомые ключи.
// Не-JSON заменяется пустым профилем, JSON не по схеме пропускается.
// Ошибка записи одной строки не останавливает прогон.
func (s *ProfileServiceImpl) NormalizeBios(ctx context.Context, db *gorm.DB, dryRun bool) (*dto.NormalizeBiosReport, error) {
	db = db.WithContext(ctx)
	report := &dto.NormalizeBiosReport{}

	err := s.userRepo.ForEachInBatches(db, normalizeBiosBatchSize, func(user *models.User) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		report.Scanned++

		canonical, state, err := models.NormalizeBio(user.Bio)
		if err != nil {
			report.Failed++
			logger.JobLog(normalizeBiosJob, "encode", err, "user_id", user.ID)
			return nil
		}
		switch state {
		case models.BioMismatched:
			report.Skipped++
			logger.Warn("bio blob does not match profile schema, left untouched", "job", normalizeBiosJob, "user_id", user.ID)
			return nil
		case models.BioUnreadable:
			report.Malformed++
			logger.Warn("unreadable bio blob, resetting to empty default", "job", normalizeBiosJob, "user_id", user.ID)
		default:
			if sameJSON(user.Bio, canonical) {
				return nil
			}
		}

		if dryRun {
			report.Rewritten++
			return nil
		}
		if err := s.userRepo.UpdateBio(db, user.ID, canonical); err != nil {
			report.Failed++
			logger.JobLog(normalizeBiosJob, "update", err, "user_id", user.ID)
			return nil
		}
		report.Rewritten++
		return nil
	})
	if err != nil {
		logger.JobLog(normalizeBiosJob, "scan", err)
		return report, err
	}

	logger.JobLog(normalizeBiosJob, "complete", nil,
		"scanned", report.Scanned,
		"rewritten", report.Rewritten,
		"malformed", report.Malformed,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"dry_run", dryRun,
	)
	return report, nil
}

func buildProfileResponse(user *models.User, bio models.Bio) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Bio:    bio,
	}
}

// sameJSON сравнивает по значению: jsonb в Postgres хранит JSON в своём форматировании
func sameJSON(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}
	var va, vb interface{}
	if json.Unmarshal(a, &va) != nil || json.Unmarshal(b, &vb) != nil {
		return false
	}
	return reflect.DeepEqual(va, vb)
}

func handleProfileError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrUserNotFound
	}
	return apperrors.InternalError(err)
}
