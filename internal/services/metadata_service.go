package services

import (
	"context"
	"net/url"
	"strings"
	"time"

	"freelance_backend/internal/logger"
	"freelance_backend/internal/metadata"
	"freelance_backend/internal/services/dto"
	"freelance_backend/pkg/apperrors"
)

type MetadataService interface {
	// Get возвращает ошибку только для невалидного URL; сбой загрузки страницы: это Success=false
	Get(ctx context.Context, rawURL string) (*dto.MetadataResponse, error)
}

type MetadataServiceImpl struct {
	scraper  metadata.Scraper
	cache    metadata.Cache // nil: кеш выключен
	cacheTTL time.Duration
}

func NewMetadataService(scraper metadata.Scraper, cache metadata.Cache, cacheTTL time.Duration) MetadataService {
	return &MetadataServiceImpl{
		scraper:  scraper,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (s *MetadataServiceImpl) Get(ctx context.Context, rawURL string) (*dto.MetadataResponse, error) {
	pageURL, err := normalizePageURL(rawURL)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, pageURL)
		if err != nil {
			// кеш необязателен: ошибку только логируем
			logger.CtxWithError(ctx, "metadata cache read failed", err, "url", pageURL)
		} else if found {
			logger.CtxDebug(ctx, "metadata cache hit", "url", pageURL)
			return &dto.MetadataResponse{Success: true, Data: cached}, nil
		}
	}

	result := s.scraper.Fetch(ctx, pageURL)
	if !result.Success {
		logger.CtxWarn(ctx, "metadata fetch failed", "url", pageURL, "error", result.Error)
		return &dto.MetadataResponse{Success: false, Error: result.Error}, nil
	}

	if s.cache != nil && result.Data != nil {
		if err := s.cache.Set(ctx, pageURL, result.Data, s.cacheTTL); err != nil {
			logger.CtxWithError(ctx, "metadata cache write failed", err, "url", pageURL)
		}
	}

	return &dto.MetadataResponse{Success: true, Data: result.Data}, nil
}

func normalizePageURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", apperrors.ErrMetadataURLRequired
	}

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", apperrors.ErrMetadataURLInvalid
	}
	return u.String(), nil
}
