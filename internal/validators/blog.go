package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-blog/internal/app"
	"github.com/MKhiriev/go-blog/models"
)

const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldUpdate  = "update"
	FieldLimit   = "limit"
)

const (
	MaxTitleLength = 255
	MaxPageSize    = 100
)

// BlogValidator validates blog and comment input and list queries.
type BlogValidator struct{}

func NewBlogValidator() Validator {
	return &BlogValidator{}
}

func (v *BlogValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.BlogInput:
		return v.validateBlogInput(ctx, value, fields...)
	case *models.BlogInput:
		return v.validateBlogInput(ctx, *value, fields...)

	case models.BlogUpdate:
		return v.validateBlogUpdate(ctx, value, fields...)
	case *models.BlogUpdate:
		return v.validateBlogUpdate(ctx, *value, fields...)

	case models.CommentInput:
		return v.validateCommentInput(ctx, value, fields...)
	case *models.CommentInput:
		return v.validateCommentInput(ctx, *value, fields...)

	case models.BlogQuery:
		return v.validateBlogQuery(ctx, value, fields...)
	case *models.BlogQuery:
		return v.validateBlogQuery(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *BlogValidator) validateBlogInput(_ context.Context, input models.BlogInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldContent}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if err := validateTitle(input.Title); err != nil {
				return err
			}
		case FieldContent:
			if err := validateContent(input.Content); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *BlogValidator) validateBlogUpdate(_ context.Context, update models.BlogUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUpdate, FieldTitle, FieldContent}
	}

	for _, f := range fields {
		switch f {
		case FieldUpdate:
			if update.IsEmpty() {
				return newFieldError(FieldUpdate, app.MsgNothingToUpdate, ErrNoFieldsToUpdate)
			}
		case FieldTitle:
			if update.Title != nil {
				if err := validateTitle(*update.Title); err != nil {
					return err
				}
			}
		case FieldContent:
			if update.Content != nil {
				if err := validateContent(*update.Content); err != nil {
					return err
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *BlogValidator) validateCommentInput(_ context.Context, input models.CommentInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldContent}
	}

	for _, f := range fields {
		switch f {
		case FieldContent:
			if err := validateContent(input.Content); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *BlogValidator) validateBlogQuery(_ context.Context, query models.BlogQuery, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLimit}
	}

	for _, f := range fields {
		switch f {
		case FieldLimit:
			if query.Limit > MaxPageSize {
				return newFieldError(FieldLimit, app.MsgInvalidPagination, ErrInvalidLimit)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateTitle(title string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	if n == 0 || utf8.RuneCountInString(title) > MaxTitleLength {
		return newFieldError(FieldTitle, app.MsgInvalidTitle, ErrInvalidTitle)
	}
	return nil
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return newFieldError(FieldContent, app.MsgContentRequired, ErrEmptyContent)
	}
	return nil
}
