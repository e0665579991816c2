package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-survey/internal/config"
	"github.com/stemsi/exstem-survey/internal/model"
	"github.com/stemsi/exstem-survey/internal/repository"
	"github.com/stemsi/exstem-survey/internal/response"
	"github.com/stemsi/exstem-survey/internal/survey"
)

const (
	responseCacheTTL = 10 * time.Minute
	statsCacheTTL    = time.Minute
)

// ResponseService accepts finished sessions and serves stored responses.
type ResponseService struct {
	sessions *SessionService
	repo     *repository.ResponseRepository
	rdb      *redis.Client
	maxLimit int
	log      zerolog.Logger
}

// NewResponseService creates a new ResponseService.
func NewResponseService(sessions *SessionService, repo *repository.ResponseRepository, rdb *redis.Client, maxLimit int, log zerolog.Logger) *ResponseService {
	if maxLimit < 1 {
		maxLimit = 50
	}
	return &ResponseService{
		sessions: sessions,
		repo:     repo,
		rdb:      rdb,
		maxLimit: maxLimit,
		log:      log.With().Str("component", "response_service").Logger(),
	}
}

// Submit closes the session and queues its submission for persistence.
// An incomplete session yields a *survey.IncompleteError carrying the report.
func (s *ResponseService) Submit(ctx context.Context, sessionID uuid.UUID) (*model.SubmitResult, error) {
	var stored model.StoredResponse

	sub, report, err := s.sessions.Submit(sessionID, func(sub survey.Submission) error {
		stored = model.NewStoredResponse(sub)
		payload, err := json.Marshal(stored)
		if err != nil {
			return fmt.Errorf("marshal response: %w", err)
		}
		if err := s.rdb.RPush(ctx, config.WorkerKey.PersistResponsesQueue, payload).Err(); err != nil {
			return fmt.Errorf("enqueue response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("response_id", stored.ID.String()).
		Str("session_id", sessionID.String()).
		Msg("Response queued")

	return &model.SubmitResult{
		ResponseID: stored.ID,
		Submission: sub,
		Report:     report,
	}, nil
}

// List returns one page of stored responses with summary statistics.
func (s *ResponseService) List(ctx context.Context, page, limit int) (*model.ResponseList, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	responses, total, err := s.repo.ListPaginated(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, fmt.Errorf("list responses: %w", err)
	}
	if responses == nil {
		responses = []model.StoredResponse{}
	}

	counts, err := s.questionCounts(ctx)
	if err != nil {
		return nil, nil, err
	}

	totalPages := (total + limit - 1) / limit
	list := &model.ResponseList{
		Responses: responses,
		Stats: model.ResponseStats{
			TotalResponses:  total,
			TotalPages:      totalPages,
			CurrentPage:     page,
			HasNextPage:     page < totalPages,
			HasPreviousPage: page > 1,
			QuestionCounts:  counts,
		},
	}
	pagination := &response.Pagination{
		Page:       page,
		PerPage:    limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
	return list, pagination, nil
}

// Get returns one stored response, served from Redis when cached.
func (s *ResponseService) Get(ctx context.Context, id uuid.UUID) (*model.StoredResponse, error) {
	key := config.CacheKey.ResponseKey(id.String())
	if data, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var resp model.StoredResponse
		if err := json.Unmarshal(data, &resp); err == nil {
			return &resp, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Response cache read failed")
	}

	resp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(resp); err == nil {
		s.rdb.Set(ctx, key, data, responseCacheTTL)
	}
	return resp, nil
}

// Delete removes a stored response and invalidates the caches that include it.
func (s *ResponseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.rdb.Del(ctx, config.CacheKey.ResponseKey(id.String()), config.CacheKey.ResponseStatsKey()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Cache invalidation failed")
	}
	s.log.Info().Str("response_id", id.String()).Msg("Response deleted")
	return nil
}

func (s *ResponseService) questionCounts(ctx context.Context) ([]model.QuestionCount, error) {
	key := config.CacheKey.ResponseStatsKey()
	if data, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var counts []model.QuestionCount
		if err := json.Unmarshal(data, &counts); err == nil {
			return counts, nil
		}
	}

	counts, err := s.repo.QuestionCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count answers: %w", err)
	}
	if data, err := json.Marshal(counts); err == nil {
		s.rdb.Set(ctx, key, data, statsCacheTTL)
	}
	return counts, nil
}
