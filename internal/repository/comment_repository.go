package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	itemDomain "github.com/shareit-market/shareit/internal/domain/item"
)

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID       int64      `gorm:"primaryKey;autoIncrement"`
	ItemID   int64      `gorm:"index;not null"`
	AuthorID int64      `gorm:"not null"`
	Text     string     `gorm:"size:2000;not null"`
	Created  time.Time  `gorm:"not null"`
	Author   *UserModel `gorm:"foreignKey:AuthorID"`
}

// TableName returns the table name for the GORM model.
func (CommentModel) TableName() string {
	return "comments"
}

// GormCommentRepository is the GORM-based implementation of the comment store.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Save persists a new comment and assigns its generated id.
func (r *GormCommentRepository) Save(ctx context.Context, c *itemDomain.Comment) error {
	model := CommentModel{
		ItemID:   c.ItemID(),
		AuthorID: c.AuthorID(),
		Text:     c.Text(),
		Created:  c.Created(),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	c.SetID(model.ID)
	return nil
}

// FindByItemID retrieves all comments for an item with author names loaded.
func (r *GormCommentRepository) FindByItemID(ctx context.Context, itemID int64) ([]*itemDomain.Comment, error) {
	var models []CommentModel
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created ASC").
		Preload("Author").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find comments by item: %w", err)
	}

	comments := make([]*itemDomain.Comment, len(models))
	for i, m := range models {
		authorName := ""
		if m.Author != nil {
			authorName = m.Author.Name
		}
		comments[i] = itemDomain.ReconstructComment(m.ID, m.ItemID, m.AuthorID, authorName, m.Text, m.Created)
	}
	return comments, nil
}
