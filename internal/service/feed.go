package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/amatveev/feedhub/internal/auth"
	"github.com/amatveev/feedhub/internal/blob"
	"github.com/amatveev/feedhub/internal/broadcast"
	"github.com/amatveev/feedhub/internal/errs"
	"github.com/amatveev/feedhub/internal/model"
	"github.com/amatveev/feedhub/internal/repository"
)

// minTextLen is the title/content length floor; inputs shorter than this
// (after trimming) fail validation, exactly minTextLen passes.
const minTextLen = 5

// DefaultPageSize is the feed page size unless configured otherwise.
const DefaultPageSize = 2

// PostInput is the caller-supplied shape for create and update.
type PostInput struct {
	Title    string
	Content  string
	ImageRef string
}

// FeedService defines the feed operations. Every call is one transition:
// validate shape, guard, touch storage, broadcast on mutation success.
type FeedService interface {
	// ListPosts returns one 1-indexed page, newest first, plus the total count.
	ListPosts(ctx context.Context, res model.AuthResult, page int) (model.Page, error)
	// GetPost returns a single post.
	GetPost(ctx context.Context, res model.AuthResult, id uuid.UUID) (*model.Post, error)
	// CreatePost stores a new post owned by the caller and broadcasts it.
	CreatePost(ctx context.Context, res model.AuthResult, in PostInput) (*model.Post, error)
	// UpdatePost rewrites a post the caller owns and broadcasts the change.
	UpdatePost(ctx context.Context, res model.AuthResult, id uuid.UUID, in PostInput) (*model.Post, error)
	// DeletePost removes a post the caller owns and broadcasts the removal.
	DeletePost(ctx context.Context, res model.AuthResult, id uuid.UUID) error
}

type FeedServiceImpl struct {
	posts    repository.PostRepository
	users    repository.UserRepository
	hub      *broadcast.Hub
	blobs    blob.Store
	log      *zap.Logger
	pageSize int
}

// NewFeedService constructs FeedService with injected collaborators.
func NewFeedService(
	posts repository.PostRepository,
	users repository.UserRepository,
	hub *broadcast.Hub,
	blobs blob.Store,
	log *zap.Logger,
	pageSize int,
) *FeedServiceImpl {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &FeedServiceImpl{posts: posts, users: users, hub: hub, blobs: blobs, log: log, pageSize: pageSize}
}

// ListPosts pages through the feed newest-first. Pages are 1-indexed;
// anything below 1 reads as the first page.
func (s *FeedServiceImpl) ListPosts(ctx context.Context, res model.AuthResult, page int) (model.Page, error) {
	if _, err := auth.RequireAuthenticated(res); err != nil {
		return model.Page{}, err
	}
	if page < 1 {
		page = 1
	}
	total, err := s.posts.Count(ctx)
	if err != nil {
		return model.Page{}, err
	}
	posts, err := s.posts.ListPage(ctx, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return model.Page{}, err
	}
	return model.Page{Posts: posts, TotalItems: total}, nil
}

// GetPost loads one post for any authenticated caller.
func (s *FeedServiceImpl) GetPost(ctx context.Context, res model.AuthResult, id uuid.UUID) (*model.Post, error) {
	if _, err := auth.RequireAuthenticated(res); err != nil {
		return nil, err
	}
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.NotFound("could not find post")
		}
		return nil, err
	}
	return p, nil
}

// CreatePost validates, stores the post with the caller as creator, then
// broadcasts a create event.
func (s *FeedServiceImpl) CreatePost(ctx context.Context, res model.AuthResult, in PostInput) (*model.Post, error) {
	if err := validatePostInput(in); err != nil {
		return nil, err
	}
	userID, err := auth.RequireAuthenticated(res)
	if err != nil {
		return nil, err
	}
	creator, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.NotFound("user not found")
		}
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p := &model.Post{
		ID:        id,
		Title:     strings.TrimSpace(in.Title),
		Content:   strings.TrimSpace(in.Content),
		ImageRef:  in.ImageRef,
		CreatorID: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.posts.CreateWithBackref(ctx, p); err != nil {
		return nil, err
	}

	s.hub.Publish(model.ChangeEvent{
		Action:  model.ActionCreate,
		Post:    *p,
		Creator: model.CreatorSummary{ID: creator.ID, Name: creator.Name},
	})
	return p, nil
}

// UpdatePost checks existence, then ownership, then writes. If the image
// reference changed, the old blob is removed only after the write succeeds;
// cleanup failures are logged, never propagated.
func (s *FeedServiceImpl) UpdatePost(ctx context.Context, res model.AuthResult, id uuid.UUID, in PostInput) (*model.Post, error) {
	if err := validatePostInput(in); err != nil {
		return nil, err
	}
	// authentication before any storage access; existence before ownership
	if _, err := auth.RequireAuthenticated(res); err != nil {
		return nil, err
	}
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.NotFound("could not find post")
		}
		return nil, err
	}
	if err := auth.RequireOwnership(res, p.CreatorID); err != nil {
		return nil, err
	}

	oldImage := p.ImageRef
	p.Title = strings.TrimSpace(in.Title)
	p.Content = strings.TrimSpace(in.Content)
	p.ImageRef = in.ImageRef
	p.UpdatedAt = time.Now()

	if err := s.posts.Update(ctx, p); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.NotFound("could not find post")
		}
		return nil, err
	}
	if oldImage != "" && oldImage != p.ImageRef {
		s.removeBlob(oldImage)
	}

	s.hub.Publish(model.ChangeEvent{
		Action:  model.ActionUpdate,
		Post:    *p,
		Creator: s.creatorSummary(ctx, p.CreatorID),
	})
	return p, nil
}

// DeletePost checks existence, then ownership, then removes post, image and
// back-reference, and broadcasts an id-only delete event.
func (s *FeedServiceImpl) DeletePost(ctx context.Context, res model.AuthResult, id uuid.UUID) error {
	if _, err := auth.RequireAuthenticated(res); err != nil {
		return err
	}
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.NotFound("could not find post")
		}
		return err
	}
	if err := auth.RequireOwnership(res, p.CreatorID); err != nil {
		return err
	}

	if err := s.posts.DeleteWithBackref(ctx, id, p.CreatorID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.NotFound("could not find post")
		}
		return err
	}
	if p.ImageRef != "" {
		s.removeBlob(p.ImageRef)
	}

	s.hub.Publish(model.ChangeEvent{
		Action:  model.ActionDelete,
		Post:    model.Post{ID: id},
		Creator: s.creatorSummary(ctx, p.CreatorID),
	})
	return nil
}

// creatorSummary resolves the author name for an event, best-effort.
func (s *FeedServiceImpl) creatorSummary(ctx context.Context, id uuid.UUID) model.CreatorSummary {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		s.log.Warn("creator lookup for event failed", zap.String("user", id.String()), zap.Error(err))
		return model.CreatorSummary{ID: id}
	}
	return model.CreatorSummary{ID: u.ID, Name: u.Name}
}

// removeBlob is best-effort image cleanup after a committed write.
func (s *FeedServiceImpl) removeBlob(ref string) {
	if err := s.blobs.Remove(ref); err != nil {
		s.log.Warn("image cleanup failed", zap.String("ref", ref), zap.Error(err))
	}
}

func validatePostInput(in PostInput) error {
	var fields []errs.FieldError
	if utf8.RuneCountInString(strings.TrimSpace(in.Title)) < minTextLen {
		fields = append(fields, errs.FieldError{Message: "Title must be at least 5 characters long."})
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Content)) < minTextLen {
		fields = append(fields, errs.FieldError{Message: "Content must be at least 5 characters long."})
	}
	if in.ImageRef == "" {
		fields = append(fields, errs.FieldError{Message: "No image provided."})
	}
	if len(fields) > 0 {
		return errs.Validation("Validation failed, entered data is incorrect", fields...)
	}
	return nil
}
