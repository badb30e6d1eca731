package handler

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"issuetracker/internal/middleware"
	"issuetracker/internal/model"

	"github.com/gin-gonic/gin"
)

type IssueServiceInterface interface {
	List(ctx context.Context) ([]model.Issue, error)
	Get(ctx context.Context, rawID string) (*model.Issue, error)
	Create(ctx context.Context, in model.IssueInput) (*model.Issue, error)
	Update(ctx context.Context, rawID string, in model.IssueInput) (*model.Issue, error)
	Delete(ctx context.Context, rawID string) (*model.Issue, error)
	Ping(ctx context.Context) (time.Time, error)
}

type IssueHandler struct {
	service IssueServiceInterface
}

func NewIssueHandler(service IssueServiceInterface) *IssueHandler {
	return &IssueHandler{service: service}
}

// DeleteIssueResponse is returned after a successful delete
type DeleteIssueResponse struct {
	Message      string       `json:"message"`
	DeletedIssue *model.Issue `json:"deletedIssue"`
}

// List godoc
// @Summary      List issues
// @Description  Returns every issue, newest first
// @Tags         Issues
// @Produce      json
// @Success      200  {array}   model.Issue
// @Failure      500  {object}  ErrorResponse
// @Router       /issues [get]
func (h *IssueHandler) List(c *gin.Context) {
	issues, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// GetByID godoc
// @Summary      Get an issue
// @Tags         Issues
// @Produce      json
// @Param        id   path      int  true  "Issue ID"
// @Success      200  {object}  model.Issue
// @Failure      400  {object}  ValidationErrorResponse
// @Failure      404  {object}  MessageResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /issues/{id} [get]
func (h *IssueHandler) GetByID(c *gin.Context) {
	issue, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// Create godoc
// @Summary      Create an issue
// @Description  Status defaults to Open and priority to Medium
// @Tags         Issues
// @Accept       json
// @Produce      json
// @Param        issue  body      model.IssueInput  true  "New issue"
// @Success      201    {object}  model.Issue
// @Failure      400    {object}  ValidationErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /issues [post]
func (h *IssueHandler) Create(c *gin.Context) {
	var req model.IssueInput
	if err := bindIssueInput(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(MsgInvalidRequestBody))
		return
	}

	issue, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, issue)
}

// Update godoc
// @Summary      Update an issue
// @Description  Only the fields present in the body are changed
// @Tags         Issues
// @Accept       json
// @Produce      json
// @Param        id     path      int               true  "Issue ID"
// @Param        issue  body      model.IssueInput  true  "Fields to change"
// @Success      200    {object}  model.Issue
// @Failure      400    {object}  ValidationErrorResponse
// @Failure      404    {object}  MessageResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /issues/{id} [put]
func (h *IssueHandler) Update(c *gin.Context) {
	var req model.IssueInput
	if err := bindIssueInput(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(MsgInvalidRequestBody))
		return
	}

	issue, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// Delete godoc
// @Summary      Delete an issue
// @Tags         Issues
// @Produce      json
// @Param        id   path      int  true  "Issue ID"
// @Success      200  {object}  DeleteIssueResponse
// @Failure      400  {object}  ValidationErrorResponse
// @Failure      404  {object}  MessageResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /issues/{id} [delete]
func (h *IssueHandler) Delete(c *gin.Context) {
	issue, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DeleteIssueResponse{
		Message:      MsgIssueDeleted,
		DeletedIssue: issue,
	})
}

// Root answers the plain liveness check.
func (h *IssueHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Issue Tracker Backend Running!"})
}

// TestDB godoc
// @Summary      Check the database connection
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /test-db [get]
func (h *IssueHandler) TestDB(c *gin.Context) {
	now, err := h.service.Ping(c.Request.Context())
	if err != nil {
		log.Printf("❌ [%s] database connection error: %v", middleware.GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to connect to database"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Database connection successful!",
		"time":    now,
	})
}

// bindIssueInput decodes the request body. A missing body reads as {} so it
// gets the same field errors as an empty object.
func bindIssueInput(c *gin.Context, req *model.IssueInput) error {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// RegisterRoutes mounts the issue resource on a router group.
func (h *IssueHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/issues", h.List)
	r.GET("/issues/:id", h.GetByID)
	r.POST("/issues", h.Create)
	r.PUT("/issues/:id", h.Update)
	r.DELETE("/issues/:id", h.Delete)
}
