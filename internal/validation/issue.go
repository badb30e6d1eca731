package validation

import (
	"slices"
	"strconv"
	"strings"

	"issuetracker/internal/model"

	"github.com/go-playground/validator/v10"
)

const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 5000
)

const (
	MsgTitleRequired   = "Title is required."
	MsgTitleTooLong    = "Title cannot exceed 255 characters."
	MsgDescriptionLong = "Description cannot exceed 5000 characters."
	MsgInvalidStatus   = "Invalid status value."
	MsgInvalidPriority = "Invalid priority value."
	MsgInvalidID       = "ID must be a positive integer."
)

var (
	validate = validator.New()

	titleTag       = "max=" + strconv.Itoa(MaxTitleLength)
	descriptionTag = "max=" + strconv.Itoa(MaxDescriptionLength)
)

// ParseID turns a path parameter into an issue id.
func ParseID(raw string) (int64, Errors) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, Errors{{Field: "id", Message: MsgInvalidID}}
	}
	return id, nil
}

// ValidateCreate checks a create payload. Title is mandatory.
func ValidateCreate(in model.IssueInput) Errors {
	return validateInput(in, true)
}

// ValidateUpdate checks an update payload. Only fields that were sent are checked.
func ValidateUpdate(in model.IssueInput) Errors {
	return validateInput(in, false)
}

func validateInput(in model.IssueInput, titleRequired bool) Errors {
	var errs Errors

	if titleRequired || in.Title.Set {
		title := strings.TrimSpace(in.Title.Value)
		switch {
		case validate.Var(title, "required") != nil:
			errs.Add("title", MsgTitleRequired)
		case validate.Var(title, titleTag) != nil:
			errs.Add("title", MsgTitleTooLong)
		}
	}

	if in.Description.Set && !in.Description.Null {
		description := strings.TrimSpace(in.Description.Value)
		if description != "" && validate.Var(description, descriptionTag) != nil {
			errs.Add("description", MsgDescriptionLong)
		}
	}

	if in.Status.Set {
		if _, ok := parseStatus(in.Status); !ok {
			errs.Add("status", MsgInvalidStatus)
		}
	}

	if in.Priority.Set {
		if _, ok := parsePriority(in.Priority); !ok {
			errs.Add("priority", MsgInvalidPriority)
		}
	}

	return errs
}

// NormalizeCreate builds the issue to insert from an already validated payload.
// Missing status and priority get their defaults.
func NormalizeCreate(in model.IssueInput) model.Issue {
	issue := model.Issue{
		Title:    strings.TrimSpace(in.Title.Value),
		Status:   model.DefaultStatus,
		Priority: model.DefaultPriority,
	}
	if d := strings.TrimSpace(in.Description.Value); in.Description.Set && d != "" {
		issue.Description = &d
	}
	if s, ok := parseStatus(in.Status); ok && in.Status.Set {
		issue.Status = s
	}
	if p, ok := parsePriority(in.Priority); ok && in.Priority.Set {
		issue.Priority = p
	}
	return issue
}

// NormalizePatch builds the patch for an already validated update payload.
func NormalizePatch(in model.IssueInput) model.IssuePatch {
	var patch model.IssuePatch
	if in.Title.Set {
		t := strings.TrimSpace(in.Title.Value)
		patch.Title = &t
	}
	if in.Description.Set {
		d := strings.TrimSpace(in.Description.Value)
		patch.Description = &d
	}
	if s, ok := parseStatus(in.Status); ok && in.Status.Set {
		patch.Status = &s
	}
	if p, ok := parsePriority(in.Priority); ok && in.Priority.Set {
		patch.Priority = &p
	}
	return patch
}

func parseStatus(o model.Optional[string]) (model.Status, bool) {
	if o.Null {
		return "", false
	}
	s := model.Status(strings.TrimSpace(o.Value))
	return s, slices.Contains(model.Statuses, s)
}

func parsePriority(o model.Optional[string]) (model.Priority, bool) {
	if o.Null {
		return "", false
	}
	p := model.Priority(strings.TrimSpace(o.Value))
	return p, slices.Contains(model.Priorities, p)
}
