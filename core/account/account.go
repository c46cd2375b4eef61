// Package account authenticates console administrators against the backend.
package account

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAdmin           = errors.New("access reserved to administrators")
)

// Admin is the backend user behind a console session.
type Admin struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

// IsAdmin reports whether the user may use the console.
func (a Admin) IsAdmin() bool {
	return a.IsStaff || a.IsSuperuser
}

// Session is the backend's answer to a successful login.
type Session struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	Admin   Admin  `json:"user"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Email = core.CleanString(c.Email, true)
	return errors.Wrap(validate.Struct(c), "validating credentials")
}

// Repository talks to the backend's account endpoints.
// Login returns ErrInvalidCredentials when the backend rejects the credentials.
// Profile authenticates with the bearer token carried by ctx.
type Repository interface {
	Login(ctx context.Context, creds Credentials) (Session, error)
	Profile(ctx context.Context) (Admin, error)
}

type Service struct {
	repo   Repository
	logger core.Logger
}

func NewService(repo Repository, logger core.Logger) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(logger, "logger"),
	).CheckAndPanic()
	return &Service{repo: repo, logger: logger}
}

// Login authenticates creds with the backend. Only staff and superusers get a Session.
func (svc *Service) Login(ctx context.Context, creds Credentials) (Session, error) {
	sess, err := svc.repo.Login(ctx, creds)
	if err != nil {
		return Session{}, errors.Wrap(err, "logging in")
	}
	if !sess.Admin.IsAdmin() {
		return Session{}, ErrNotAdmin
	}
	return sess, nil
}

// Profile returns the admin owning the token carried by ctx.
func (svc *Service) Profile(ctx context.Context) (Admin, error) {
	adm, err := svc.repo.Profile(ctx)
	if err != nil {
		return Admin{}, errors.Wrap(err, "fetching profile")
	}
	if !adm.IsAdmin() {
		return Admin{}, ErrNotAdmin
	}
	return adm, nil
}
