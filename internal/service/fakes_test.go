package service

import (
	"context"
	"errors"
	"io"
	"sort"

	"github.com/gofrs/uuid/v5"

	"github.com/amatveev/feedhub/internal/blob"
	"github.com/amatveev/feedhub/internal/errs"
	"github.com/amatveev/feedhub/internal/model"
	"github.com/amatveev/feedhub/internal/repository"
)

type fakePosts struct {
	byID map[uuid.UUID]*model.Post

	getErr    error
	createErr error
	updateErr error
	deleteErr error

	createCalls int
	updateCalls int
	deleteCalls int
}

var _ repository.PostRepository = (*fakePosts)(nil)

func newFakePosts() *fakePosts {
	return &fakePosts{byID: map[uuid.UUID]*model.Post{}}
}

func (f *fakePosts) GetByID(_ context.Context, id uuid.UUID) (*model.Post, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (f *fakePosts) ListPage(_ context.Context, skip, limit int) ([]model.Post, error) {
	all := make([]model.Post, 0, len(f.byID))
	for _, p := range f.byID {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if skip >= len(all) {
		return []model.Post{}, nil
	}
	all = all[skip:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakePosts) Count(context.Context) (int, error) { return len(f.byID), nil }

func (f *fakePosts) CreateWithBackref(_ context.Context, p *model.Post) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	c := *p
	f.byID[p.ID] = &c
	return nil
}

func (f *fakePosts) Update(_ context.Context, p *model.Post) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[p.ID]; !ok {
		return errs.ErrNotFound
	}
	c := *p
	f.byID[p.ID] = &c
	return nil
}

func (f *fakePosts) DeleteWithBackref(_ context.Context, id, _ uuid.UUID) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeUsers struct {
	byID map[uuid.UUID]*model.User

	createErr error
	getErr    error

	statusCalls int
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[uuid.UUID]*model.User{}}
}

func (f *fakeUsers) add(u model.User) { f.byID[u.ID] = &u }

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, ex := range f.byID {
		if ex.Email == u.Email {
			return errs.ErrAlreadyExists
		}
	}
	c := *u
	f.byID[u.ID] = &c
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	f.statusCalls++
	u, ok := f.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	u.Status = status
	return nil
}

type fakeBlobs struct {
	removed   []string
	removeErr error
}

var _ blob.Store = (*fakeBlobs)(nil)

func (f *fakeBlobs) Save(string, string, io.Reader) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeBlobs) Remove(ref string) error {
	f.removed = append(f.removed, ref)
	return f.removeErr
}
