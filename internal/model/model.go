// Package model defines domain entities shared by services, repositories and transport.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Identity is a verified user identity extracted from a credential.
// It is produced only by successful token verification and never persisted.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// AuthResult is the per-request authentication outcome. It is computed once
// by the identity resolver and read, never recomputed, by downstream guards.
type AuthResult struct {
	Authenticated bool
	UserID        uuid.UUID
	Email         string
}

// Post is a single feed entry. CreatorID is set at creation and immutable.
type Post struct {
	ID        uuid.UUID
	Title     string
	Content   string
	ImageRef  string // blob store reference, relative path
	CreatorID uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// User is an account row. PostIDs mirrors the set of live posts whose
// creator is this user and is maintained in the same transaction as post
// creation/deletion.
type User struct {
	ID        uuid.UUID
	Email     string // unique
	Name      string
	PwdHash   []byte // bcrypt
	Status    string
	PostIDs   []uuid.UUID
	CreatedAt time.Time
}

// Action enumerates feed change kinds carried by broadcast events.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// CreatorSummary is the minimal author info attached to a change event.
type CreatorSummary struct {
	ID   uuid.UUID
	Name string
}

// ChangeEvent is a transient feed mutation notice. For deletes the Post
// carries only its ID. Events exist only on the broadcast channel.
type ChangeEvent struct {
	Action  Action
	Post    Post
	Creator CreatorSummary
}

// Page is one page of the feed plus the total count so callers can compute
// the number of pages.
type Page struct {
	Posts      []Post
	TotalItems int
}
