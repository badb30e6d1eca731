package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"issuetracker/internal/handler"
	"issuetracker/internal/middleware"
	"issuetracker/internal/model"
	"issuetracker/internal/repository"
	"issuetracker/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockIssueService is a testify mock of the issue API.
type MockIssueService struct {
	mock.Mock
}

func (m *MockIssueService) List(ctx context.Context) ([]model.Issue, error) {
	args := m.Called(ctx)
	issues, _ := args.Get(0).([]model.Issue)
	return issues, args.Error(1)
}

func (m *MockIssueService) Get(ctx context.Context, rawID string) (*model.Issue, error) {
	args := m.Called(ctx, rawID)
	issue, _ := args.Get(0).(*model.Issue)
	return issue, args.Error(1)
}

func (m *MockIssueService) Create(ctx context.Context, in model.IssueInput) (*model.Issue, error) {
	args := m.Called(ctx, in)
	issue, _ := args.Get(0).(*model.Issue)
	return issue, args.Error(1)
}

func (m *MockIssueService) Update(ctx context.Context, rawID string, in model.IssueInput) (*model.Issue, error) {
	args := m.Called(ctx, rawID, in)
	issue, _ := args.Get(0).(*model.Issue)
	return issue, args.Error(1)
}

func (m *MockIssueService) Delete(ctx context.Context, rawID string) (*model.Issue, error) {
	args := m.Called(ctx, rawID)
	issue, _ := args.Get(0).(*model.Issue)
	return issue, args.Error(1)
}

func (m *MockIssueService) Ping(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}

func setupTest() (*gin.Engine, *MockIssueService) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())

	mockService := new(MockIssueService)
	issueHandler := handler.NewIssueHandler(mockService)

	r.GET("/", issueHandler.Root)
	r.GET("/test-db", issueHandler.TestDB)
	issueHandler.RegisterRoutes(r)

	return r, mockService
}

func perform(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

var created = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleIssue() *model.Issue {
	return &model.Issue{
		ID:        1,
		Title:     "Bug A",
		Status:    model.StatusOpen,
		Priority:  model.PriorityMedium,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestList_Success(t *testing.T) {
	// Arrange
	router, mockService := setupTest()
	mockService.On("List", mock.Anything).Return([]model.Issue{*sampleIssue()}, nil)

	// Act
	resp := perform(router, "GET", "/issues", "")

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[{
		"id": 1,
		"title": "Bug A",
		"description": null,
		"status": "Open",
		"priority": "Medium",
		"created_at": "2024-03-01T12:00:00Z",
		"updated_at": "2024-03-01T12:00:00Z"
	}]`, resp.Body.String())
	mockService.AssertExpectations(t)
}

func TestList_Empty(t *testing.T) {
	router, mockService := setupTest()
	mockService.On("List", mock.Anything).Return([]model.Issue{}, nil)

	resp := perform(router, "GET", "/issues", "")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[]`, resp.Body.String())
}

func TestList_StoreUnavailable(t *testing.T) {
	router, mockService := setupTest()
	mockService.On("List", mock.Anything).
		Return(nil, fmt.Errorf("list issues: %w: %w", repository.ErrUnavailable, assert.AnError))

	resp := perform(router, "GET", "/issues", "")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"error":{"message":"Internal Server Error"}}`, resp.Body.String())
	assert.NotContains(t, resp.Body.String(), assert.AnError.Error())
}

func TestGetByID_Success(t *testing.T) {
	router, mockService := setupTest()
	mockService.On("Get", mock.Anything, "1").Return(sampleIssue(), nil)

	resp := perform(router, "GET", "/issues/1", "")

	assert.Equal(t, http.StatusOK, resp.Code)
	var issue model.Issue
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &issue))
	assert.Equal(t, int64(1), issue.ID)
	assert.Equal(t, "Bug A", issue.Title)
	mockService.AssertExpectations(t)
}

func TestGetByID_InvalidID(t *testing.T) {
	router, mockService := setupTest()
	mockService.On("Get", mock.Anything, "abc").
		Return(nil, validation.Errors{{Field: "id", Message: validation.MsgInvalidID}})

	resp := perform(router, "GET", "/issues/abc", "")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.JSONEq(t, `{"errors":[{"field":"id","message":"ID must be a positive integer."}]}`, resp.Body.String())
}

func TestGetByID_NotFound(t *testing.T) {
	router, mockService := setupTest()
	mockService.On("Get", mock.Anything, "9").Return(nil, repository.ErrIssueNotFound)

	resp := perform(router, "GET", "/issues/9", "")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{"message":"Issue not found"}`, resp.Body.String())
}

func TestCreate_Success(t *testing.T) {
	// Arrange
	router, mockService := setupTest()
	mockService.On("Create", mock.Anything, model.IssueInput{Title: model.Some("Bug A")}).
		Return(sampleIssue(), nil)

	// Act
	resp := perform(router, "POST", "/issues", `{"title":"Bug A"}`)

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)
	var issue model.Issue
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &issue))
	assert.Equal(t, model.StatusOpen, issue.Status)
	assert.Equal(t, model.PriorityMedium, issue.Priority)
	assert.Equal(t, issue.CreatedAt, issue.UpdatedAt)
	mockService.AssertExpectations(t)
}

func TestCreate_ValidationErrors(t *testing.T) {
	router, mockService := setupTest()
	errs := validation.Errors{
		{Field: "title", Message: validation.MsgTitleRequired},
		{Field: "status", Message: validation.MsgInvalidStatus},
	}
	mockService.On("Create", mock.Anything, mock.Anything).Return(nil, errs)

	resp := perform(router, "POST", "/issues", `{"title":"  ","status":"Done"}`)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.JSONEq(t, `{"errors":[
		{"field":"title","message":"Title is required."},
		{"field":"status","message":"Invalid status value."}
	]}`, resp.Body.String())
}

func TestCreate_MalformedBody(t *testing.T) {
	router, mockService := setupTest()

	resp := perform(router, "POST", "/issues", `{"title":`)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.JSONEq(t, `{"error":{"message":"Invalid request body"}}`, resp.Body.String())
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_MissingBodyReadsAsEmptyObject(t *testing.T) {
	router, mockService := setupTest()
	mockService.On("Create", mock.Anything, model.IssueInput{}).
		Return(nil, validation.Errors{{Field: "title", Message: validation.MsgTitleRequired}})

	req := httptest.NewRequest("POST", "/issues", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.JSONEq(t, `{"errors":[{"field":"title","message":"Title is required."}]}`, resp.Body.String())
	mockService.AssertExpectations(t)
}

func TestUpdate_MissingBodyReadsAsEmptyObject(t *testing.T) {
	router, mockService := setupTest()
	mockService.On("Update", mock.Anything, "1", model.IssueInput{}).Return(sampleIssue(), nil)

	req := httptest.NewRequest("PUT", "/issues/1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	mockService.AssertExpectations(t)
}

func TestUpdate_Success(t *testing.T) {
	router, mockService := setupTest()
	updated := sampleIssue()
	updated.Status = model.StatusInProgress
	updated.UpdatedAt = created.Add(time.Second)
	mockService.On("Update", mock.Anything, "1", model.IssueInput{Status: model.Some("In Progress")}).
		Return(updated, nil)

	resp := perform(router, "PUT", "/issues/1", `{"status":"In Progress"}`)

	assert.Equal(t, http.StatusOK, resp.Code)
	var issue model.Issue
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &issue))
	assert.Equal(t, model.StatusInProgress, issue.Status)
	assert.Equal(t, "Bug A", issue.Title)
	assert.True(t, issue.UpdatedAt.After(issue.CreatedAt))
	mockService.AssertExpectations(t)
}

func TestUpdate_PassesNullAndOmittedFields(t *testing.T) {
	router, mockService := setupTest()
	want := model.IssueInput{Description: model.Null[string]()}
	mockService.On("Update", mock.Anything, "1", want).Return(sampleIssue(), nil)

	resp := perform(router, "PUT", "/issues/1", `{"description":null}`)

	assert.Equal(t, http.StatusOK, resp.Code)
	mockService.AssertExpectations(t)
}

func TestUpdate_NotFound(t *testing.T) {
	router, mockService := setupTest()
	mockService.On("Update", mock.Anything, "5", mock.Anything).Return(nil, repository.ErrIssueNotFound)

	resp := perform(router, "PUT", "/issues/5", `{"title":"x"}`)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{"message":"Issue not found"}`, resp.Body.String())
}

func TestDelete_Success(t *testing.T) {
	router, mockService := setupTest()
	mockService.On("Delete", mock.Anything, "1").Return(sampleIssue(), nil)

	resp := perform(router, "DELETE", "/issues/1", "")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body handler.DeleteIssueResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Issue deleted successfully", body.Message)
	require.NotNil(t, body.DeletedIssue)
	assert.Equal(t, int64(1), body.DeletedIssue.ID)
}

func TestDelete_NotFound(t *testing.T) {
	router, mockService := setupTest()
	mockService.On("Delete", mock.Anything, "1").Return(nil, repository.ErrIssueNotFound)

	resp := perform(router, "DELETE", "/issues/1", "")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDelete_InternalError(t *testing.T) {
	router, mockService := setupTest()
	mockService.On("Delete", mock.Anything, "1").Return(nil, assert.AnError)

	resp := perform(router, "DELETE", "/issues/1", "")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"error":{"message":"Internal Server Error"}}`, resp.Body.String())
}

func TestRoot(t *testing.T) {
	router, _ := setupTest()

	resp := perform(router, "GET", "/", "")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"message":"Issue Tracker Backend Running!"}`, resp.Body.String())
}

func TestTestDB(t *testing.T) {
	router, mockService := setupTest()
	mockService.On("Ping", mock.Anything).Return(created, nil).Once()
	mockService.On("Ping", mock.Anything).Return(time.Time{}, repository.ErrUnavailable).Once()

	resp := perform(router, "GET", "/test-db", "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"message":"Database connection successful!","time":"2024-03-01T12:00:00Z"}`, resp.Body.String())

	resp = perform(router, "GET", "/test-db", "")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"error":"Failed to connect to database"}`, resp.Body.String())
}
