package service

import (
	"context"
	"fmt"
	"time"

	"issuetracker/internal/model"
	"issuetracker/internal/repository"
	"issuetracker/internal/validation"
)

// IssueService holds the business rules of the issue API: every operation
// validates its input, performs one store call and returns the result.
// Failures come back as validation.Errors, repository.ErrIssueNotFound,
// repository.ErrUnavailable or an unclassified internal error.
type IssueService struct {
	repo repository.IssueRepositoryInterface
}

func NewIssueService(repo repository.IssueRepositoryInterface) *IssueService {
	return &IssueService{repo: repo}
}

func (s *IssueService) List(ctx context.Context) ([]model.Issue, error) {
	return s.repo.List(ctx)
}

func (s *IssueService) Get(ctx context.Context, rawID string) (*model.Issue, error) {
	id, errs := validation.ParseID(rawID)
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *IssueService) Create(ctx context.Context, in model.IssueInput) (*model.Issue, error) {
	if err := validation.ValidateCreate(in).Err(); err != nil {
		return nil, err
	}

	issue := validation.NormalizeCreate(in)
	if err := s.repo.Create(ctx, &issue); err != nil {
		return nil, fmt.Errorf("create issue %q: %w", issue.Title, err)
	}
	return &issue, nil
}

// Update merges the fields present in the payload over the stored issue.
// Id and payload errors are reported together.
func (s *IssueService) Update(ctx context.Context, rawID string, in model.IssueInput) (*model.Issue, error) {
	id, errs := validation.ParseID(rawID)
	errs = append(errs, validation.ValidateUpdate(in)...)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, validation.NormalizePatch(in))
}

// Delete removes the issue and returns it as it was just before removal.
func (s *IssueService) Delete(ctx context.Context, rawID string) (*model.Issue, error) {
	id, errs := validation.ParseID(rawID)
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return s.repo.Delete(ctx, id)
}

// Ping reports the database server time.
func (s *IssueService) Ping(ctx context.Context) (time.Time, error) {
	return s.repo.Now(ctx)
}
