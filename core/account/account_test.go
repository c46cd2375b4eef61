package account

import (
	"context"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/tests"
)

type fakeRepo struct {
	sess Session
	err  error
}

func (r *fakeRepo) Login(context.Context, Credentials) (Session, error) { return r.sess, r.err }
func (r *fakeRepo) Profile(context.Context) (Admin, error)              { return r.sess.Admin, r.err }

func TestService_Login(t *testing.T) {
	tests := []struct {
		name    string
		repo    *fakeRepo
		wantErr error
	}{
		{name: "staff", repo: &fakeRepo{sess: Session{Access: "a", Admin: Admin{IsStaff: true}}}},
		{name: "superuser", repo: &fakeRepo{sess: Session{Access: "a", Admin: Admin{IsSuperuser: true}}}},
		{name: "regular user", repo: &fakeRepo{sess: Session{Access: "a", Admin: Admin{}}}, wantErr: ErrNotAdmin},
		{name: "bad credentials", repo: &fakeRepo{err: ErrInvalidCredentials}, wantErr: ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.repo, new(testutil.Logger))

			sess, err := svc.Login(context.Background(), Credentials{Email: "a@b.c", Password: "x"})
			if errors.Cause(err) != tt.wantErr {
				t.Errorf("Login() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				assert.Equal(t, "a", sess.Access)
			}
			_, err = svc.Profile(context.Background())
			if errors.Cause(err) != tt.wantErr {
				t.Errorf("Profile() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewService(t *testing.T) {
	assert.Panics(t, func() { NewService(nil, new(testutil.Logger)) })
	assert.NotPanics(t, func() { NewService(&fakeRepo{}, new(testutil.Logger)) })
}

func TestCredentials_Validate(t *testing.T) {
	validate := validator.New()
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	core.InitValidators(validate, translator)

	tests := []struct {
		name    string
		creds   Credentials
		wantErr bool
	}{
		{name: "ok", creds: Credentials{Email: " Admin@FTF.tn ", Password: "x"}},
		{name: "no email", creds: Credentials{Password: "x"}, wantErr: true},
		{name: "bad email", creds: Credentials{Email: "nope", Password: "x"}, wantErr: true},
		{name: "no password", creds: Credentials{Email: "a@b.c"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate(validate)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
