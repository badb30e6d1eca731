package repository

import (
	"context"
	"errors"
	"time"

	"issuetracker/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IssueRepository struct {
	db *gorm.DB
}

type IssueRepositoryInterface interface {
	List(ctx context.Context) ([]model.Issue, error)
	GetByID(ctx context.Context, id int64) (*model.Issue, error)
	Create(ctx context.Context, issue *model.Issue) error
	Update(ctx context.Context, id int64, patch model.IssuePatch) (*model.Issue, error)
	Delete(ctx context.Context, id int64) (*model.Issue, error)
	Now(ctx context.Context) (time.Time, error)
}

var _ IssueRepositoryInterface = (*IssueRepository)(nil)

func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

// List returns every issue, newest first
func (r *IssueRepository) List(ctx context.Context) ([]model.Issue, error) {
	issues := []model.Issue{}
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&issues)
	if result.Error != nil {
		return nil, classify("list issues", result.Error)
	}
	return issues, nil
}

// GetByID retrieves an issue by its ID
func (r *IssueRepository) GetByID(ctx context.Context, id int64) (*model.Issue, error) {
	var issue model.Issue
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&issue)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, classify("get issue", result.Error)
	}
	return &issue, nil
}

// Create inserts the issue and fills in the id and timestamps assigned by
// the database
func (r *IssueRepository) Create(ctx context.Context, issue *model.Issue) error {
	return classify("create issue", r.db.WithContext(ctx).Create(issue).Error)
}

// Update applies the patch in a single statement and returns the stored row.
// updated_at always moves forward, even if the server clock has not.
func (r *IssueRepository) Update(ctx context.Context, id int64, patch model.IssuePatch) (*model.Issue, error) {
	changes := map[string]interface{}{
		"updated_at": gorm.Expr("GREATEST(NOW(), updated_at + interval '1 microsecond')"),
	}
	if patch.Title != nil {
		changes["title"] = *patch.Title
	}
	if patch.Description != nil {
		if *patch.Description == "" {
			changes["description"] = nil
		} else {
			changes["description"] = *patch.Description
		}
	}
	if patch.Status != nil {
		changes["status"] = *patch.Status
	}
	if patch.Priority != nil {
		changes["priority"] = *patch.Priority
	}

	var issues []model.Issue
	result := r.db.WithContext(ctx).
		Model(&issues).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(changes)
	if result.Error != nil {
		return nil, classify("update issue", result.Error)
	}
	if result.RowsAffected == 0 || len(issues) == 0 {
		return nil, ErrIssueNotFound
	}
	return &issues[0], nil
}

// Delete removes an issue by its ID and returns the row as it was
func (r *IssueRepository) Delete(ctx context.Context, id int64) (*model.Issue, error) {
	var issues []model.Issue
	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&issues)
	if result.Error != nil {
		return nil, classify("delete issue", result.Error)
	}
	if result.RowsAffected == 0 || len(issues) == 0 {
		return nil, ErrIssueNotFound
	}
	return &issues[0], nil
}

// Now asks the database for its current time.
func (r *IssueRepository) Now(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := r.db.WithContext(ctx).Raw("SELECT NOW()").Scan(&now).Error; err != nil {
		return time.Time{}, classify("ping database", err)
	}
	return now, nil
}
