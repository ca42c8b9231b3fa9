package repos

import (
	"context"
	"strings"

	"minimart/internal/docstore"
	"minimart/internal/domain"
)

type UserRepo struct{ Store docstore.Store }

func NewUserRepo(st docstore.Store) *UserRepo { return &UserRepo{Store: st} }

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	docs, err := r.Store.Query(ctx, ColUsers, docstore.Where{Field: "email", Value: strings.ToLower(email)})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, docstore.ErrNotFound
	}
	var u domain.User
	if err := docs[0].Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	doc, err := r.Store.Get(ctx, ColUsers, id)
	if err != nil {
		return nil, err
	}
	var u domain.User
	if err := doc.Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Admins resolves the notification audience: every user holding the admin role.
func (r *UserRepo) Admins(ctx context.Context) ([]domain.User, error) {
	docs, err := r.Store.Query(ctx, ColUsers, docstore.Where{Field: "role", Value: domain.RoleAdmin})
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.User](docs)
}

type sessionDoc struct {
	UserID string `json:"user_id"`
}

func (r *UserRepo) BindSession(ctx context.Context, sid, userID string) error {
	return r.Store.Set(ctx, ColSessions, sid, sessionDoc{UserID: userID})
}

func (r *UserRepo) SessionUser(ctx context.Context, sid string) (*domain.User, error) {
	doc, err := r.Store.Get(ctx, ColSessions, sid)
	if err != nil {
		return nil, err
	}
	var s sessionDoc
	if err := doc.Decode(&s); err != nil {
		return nil, err
	}
	if s.UserID == "" {
		return nil, docstore.ErrNotFound
	}
	return r.ByID(ctx, s.UserID)
}

func (r *UserRepo) UnbindSession(ctx context.Context, sid string) error {
	err := r.Store.Update(ctx, ColSessions, sid, map[string]any{"user_id": ""})
	if err == docstore.ErrNotFound {
		return nil
	}
	return err
}
