package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	requestDomain "github.com/shareit-market/shareit/internal/domain/request"
	"github.com/shareit-market/shareit/pkg/domain"
)

// RequestModel is the GORM model for the requests table.
type RequestModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	RequesterID int64     `gorm:"index;not null"`
	Description string    `gorm:"size:1000;not null"`
	Created     time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RequestModel) TableName() string {
	return "requests"
}

// GormRequestRepository is the GORM-based implementation of the request store.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository.
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// Save persists a new request and assigns its generated id.
func (r *GormRequestRepository) Save(ctx context.Context, req *requestDomain.Request) error {
	model := RequestModel{
		RequesterID: req.RequesterID(),
		Description: req.Description(),
		Created:     req.Created(),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save request: %w", err)
	}
	req.SetID(model.ID)
	return nil
}

// FindByID retrieves a request by its unique identifier.
func (r *GormRequestRepository) FindByID(ctx context.Context, id int64) (*requestDomain.Request, error) {
	var model RequestModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Request", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to find request by id: %w", err)
	}
	return toDomainRequest(&model), nil
}

// FindByRequester retrieves a user's requests, newest first.
func (r *GormRequestRepository) FindByRequester(ctx context.Context, requesterID int64) ([]*requestDomain.Request, error) {
	var models []RequestModel
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find requests by requester: %w", err)
	}
	return toDomainRequests(models), nil
}

// FindAll retrieves all requests newest first, optionally paged.
func (r *GormRequestRepository) FindAll(ctx context.Context, page *requestDomain.Page) ([]*requestDomain.Request, error) {
	q := r.db.WithContext(ctx).Order("created DESC")
	if page != nil {
		q = q.Offset(page.Number * page.Size).Limit(page.Size)
	}

	var models []RequestModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return toDomainRequests(models), nil
}

func toDomainRequest(m *RequestModel) *requestDomain.Request {
	return requestDomain.Reconstruct(m.ID, m.RequesterID, m.Description, m.Created)
}

func toDomainRequests(models []RequestModel) []*requestDomain.Request {
	requests := make([]*requestDomain.Request, len(models))
	for i := range models {
		requests[i] = toDomainRequest(&models[i])
	}
	return requests
}
