package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	itemDomain "github.com/shareit-market/shareit/internal/domain/item"
	requestDomain "github.com/shareit-market/shareit/internal/domain/request"
	userDomain "github.com/shareit-market/shareit/internal/domain/user"
	"github.com/shareit-market/shareit/pkg/domain"
)

// RequestService manages item requests and their answering listings.
type RequestService struct {
	requests requestDomain.Repository
	items    itemDomain.Repository
	users    userDomain.Repository
	logger   *zap.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requests requestDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		items:    items,
		users:    users,
		logger:   logger,
	}
}

// CreateRequest posts a new item request for the given user.
func (s *RequestService) CreateRequest(ctx context.Context, requesterID int64, description string) (*RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, requesterID); err != nil {
		return nil, err
	}

	r, err := requestDomain.NewRequest(requesterID, description, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.requests.Save(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("request created",
		zap.Int64("request_id", r.ID()),
		zap.Int64("requester_id", requesterID),
	)
	return s.toRequestDTO(ctx, r)
}

// GetUserRequests lists the user's own requests, newest first, each with
// the items offered in response.
func (s *RequestService) GetUserRequests(ctx context.Context, requesterID int64) ([]RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.requests.FindByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.toRequestDTOs(ctx, requests, -1)
}

// GetAllRequests lists other users' requests, newest first, optionally
// paged. The caller's own requests are excluded.
func (s *RequestService) GetAllRequests(ctx context.Context, actorID int64, from, size *int) ([]RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, actorID); err != nil {
		return nil, err
	}

	page, err := planRequestPage(from, size)
	if err != nil {
		return nil, err
	}

	requests, err := s.requests.FindAll(ctx, page)
	if err != nil {
		return nil, err
	}
	return s.toRequestDTOs(ctx, requests, actorID)
}

// GetRequestByID returns a single request with its answering items.
func (s *RequestService) GetRequestByID(ctx context.Context, actorID, requestID int64) (*RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, actorID); err != nil {
		return nil, err
	}

	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.toRequestDTO(ctx, r)
}

func (s *RequestService) toRequestDTO(ctx context.Context, r *requestDomain.Request) (*RequestDTO, error) {
	items, err := s.items.FindByRequestID(ctx, r.ID())
	if err != nil {
		return nil, err
	}
	return &RequestDTO{
		ID:          r.ID(),
		Description: r.Description(),
		RequesterID: r.RequesterID(),
		Created:     r.Created(),
		Items:       toItemDTOs(items),
	}, nil
}

// toRequestDTOs maps requests to DTOs, skipping those made by excludeID
// (pass a negative id to keep everything).
func (s *RequestService) toRequestDTOs(ctx context.Context, requests []*requestDomain.Request, excludeID int64) ([]RequestDTO, error) {
	dtos := make([]RequestDTO, 0, len(requests))
	for _, r := range requests {
		if r.RequesterID() == excludeID {
			continue
		}
		dto, err := s.toRequestDTO(ctx, r)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

func planRequestPage(from, size *int) (*requestDomain.Page, error) {
	if from == nil || size == nil {
		return nil, nil
	}
	if *from < 0 || *size <= 0 {
		return nil, domain.NewValidationError("Parameters should be natural!")
	}
	return &requestDomain.Page{Number: *from / *size, Size: *size}, nil
}
