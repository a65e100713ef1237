package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofrs/uuid/v5"
	"github.com/labstack/echo/v4"

	"github.com/amatveev/feedhub/internal/auth"
	"github.com/amatveev/feedhub/internal/blob"
	"github.com/amatveev/feedhub/internal/errs"
	"github.com/amatveev/feedhub/internal/service"
)

// FeedHandler serves the post CRUD and image upload endpoints.
type FeedHandler struct {
	feed  service.FeedService
	blobs blob.Store
}

// NewFeedHandler constructs the handler.
func NewFeedHandler(feed service.FeedService, blobs blob.Store) *FeedHandler {
	return &FeedHandler{feed: feed, blobs: blobs}
}

// ListPosts handles GET /feed/posts?page=N.
func (h *FeedHandler) ListPosts(c echo.Context) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page = n
		}
	}
	res := auth.ResultFromCtx(c.Request().Context())
	pg, err := h.feed.ListPosts(c.Request().Context(), res, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Posts fetched.",
		"posts":      toPostResponses(pg.Posts),
		"totalItems": pg.TotalItems,
	})
}

// GetPost handles GET /feed/post/:postId.
func (h *FeedHandler) GetPost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}
	res := auth.ResultFromCtx(c.Request().Context())
	p, err := h.feed.GetPost(c.Request().Context(), res, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Post fetched.",
		"post":    toPostResponse(*p),
	})
}

// CreatePost handles POST /feed/post.
func (h *FeedHandler) CreatePost(c echo.Context) error {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	res := auth.ResultFromCtx(c.Request().Context())
	p, err := h.feed.CreatePost(c.Request().Context(), res, service.PostInput{
		Title:    req.Title,
		Content:  req.Content,
		ImageRef: req.ImageRef,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Post created successfully!",
		"post":    toPostResponse(*p),
	})
}

// UpdatePost handles PUT /feed/post/:postId.
func (h *FeedHandler) UpdatePost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	res := auth.ResultFromCtx(c.Request().Context())
	p, err := h.feed.UpdatePost(c.Request().Context(), res, id, service.PostInput{
		Title:    req.Title,
		Content:  req.Content,
		ImageRef: req.ImageRef,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Post updated.",
		"post":    toPostResponse(*p),
	})
}

// DeletePost handles DELETE /feed/post/:postId.
func (h *FeedHandler) DeletePost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}
	res := auth.ResultFromCtx(c.Request().Context())
	if err := h.feed.DeletePost(c.Request().Context(), res, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted."})
}

// UploadImage handles POST /feed/image (multipart). The stored reference is
// returned for use in a subsequent create or update.
func (h *FeedHandler) UploadImage(c echo.Context) error {
	res := auth.ResultFromCtx(c.Request().Context())
	if _, err := auth.RequireAuthenticated(res); err != nil {
		return err
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return errs.Validation("Validation failed, entered data is incorrect",
			errs.FieldError{Message: "No image provided."})
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	ref, err := h.blobs.Save(fh.Filename, fh.Header.Get(echo.HeaderContentType), f)
	if err != nil {
		if errors.Is(err, errs.ErrUnsupportedMedia) {
			return errs.Validation("Validation failed, entered data is incorrect",
				errs.FieldError{Message: "Only png, jpg and jpeg images are allowed."})
		}
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"imageRef": ref})
}

// postID parses the :postId path parameter; anything that is not a UUID
// cannot name a post, so it reads as not found rather than bad request.
func postID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.FromString(c.Param("postId"))
	if err != nil {
		return uuid.Nil, errs.NotFound("could not find post")
	}
	return id, nil
}
