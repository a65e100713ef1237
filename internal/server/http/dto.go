package httpserver

import (
	"time"

	"github.com/amatveev/feedhub/internal/model"
)

// Request shapes. Validation tags are enforced by the echo validator; the
// services re-check the invariants they own, so the tags exist for early,
// field-annotated 422 responses.

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=5"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type postRequest struct {
	Title    string `json:"title" validate:"required,min=5"`
	Content  string `json:"content" validate:"required,min=5"`
	ImageRef string `json:"imageRef" validate:"required"`
}

// Response shapes.

type postResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageRef  string    `json:"imageRef"`
	CreatorID string    `json:"creatorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type creatorResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type changeEventPayload struct {
	Action  string          `json:"action"`
	Post    postResponse    `json:"post"`
	Creator creatorResponse `json:"creator"`
}

func toPostResponse(p model.Post) postResponse {
	return postResponse{
		ID:        p.ID.String(),
		Title:     p.Title,
		Content:   p.Content,
		ImageRef:  p.ImageRef,
		CreatorID: p.CreatorID.String(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPostResponses(ps []model.Post) []postResponse {
	out := make([]postResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPostResponse(p))
	}
	return out
}

func toEventPayload(ev model.ChangeEvent) changeEventPayload {
	return changeEventPayload{
		Action:  string(ev.Action),
		Post:    toPostResponse(ev.Post),
		Creator: creatorResponse{ID: ev.Creator.ID.String(), Name: ev.Creator.Name},
	}
}
