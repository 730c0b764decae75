package service

import (
	"context"
	"log"

	"github.com/KataCreate/report-sys/internal/auth"
	"github.com/KataCreate/report-sys/internal/model"
)

// AdminMirror is the persistence capability for the admin-user mirror table.
type AdminMirror interface {
	Create(ctx context.Context, email, role string) (*model.AdminUser, error)
	List(ctx context.Context) ([]model.AdminUser, error)
	Delete(ctx context.Context, id string) error
}

// SignupService runs operator registration against the identity provider and
// mirrors the account into the admin listing.
type SignupService struct {
	identity auth.Identity
	mirror   AdminMirror
}

func NewSignupService(identity auth.Identity, mirror AdminMirror) *SignupService {
	return &SignupService{identity: identity, mirror: mirror}
}

// SignUp registers the account with the identity provider, then writes the
// admin mirror row. The mirror write is best-effort: a persistence failure is
// logged and never fails or rolls back the sign-up itself.
func (s *SignupService) SignUp(ctx context.Context, email, password string) (*auth.Session, error) {
	session, err := s.identity.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if _, err := s.mirror.Create(ctx, email, "admin"); err != nil {
		log.Printf("signup %s: admin mirror write failed: %v", email, err)
	}

	return session, nil
}

// SignIn authenticates against the identity provider.
func (s *SignupService) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	return s.identity.SignIn(ctx, email, password)
}

// AdminUsers returns the mirrored admin listing, newest first.
func (s *SignupService) AdminUsers(ctx context.Context) ([]model.AdminUser, error) {
	users, err := s.mirror.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.AdminUser{}
	}
	return users, nil
}

// DeleteAdminUser removes a mirror row.
func (s *SignupService) DeleteAdminUser(ctx context.Context, id string) error {
	return s.mirror.Delete(ctx, id)
}
