package restapi

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/account"
)

const accountResource = "accounts"

type accountRepository struct {
	client *Client
}

var _ account.Repository = (*accountRepository)(nil)

func NewAccountRepository(client *Client) account.Repository {
	return &accountRepository{client: client}
}

func (repo *accountRepository) Login(ctx context.Context, creds account.Credentials) (account.Session, error) {
	payload, err := repo.client.post(ctx, accountResource, "/accounts/admins/email-login/", creds)
	if err != nil {
		if apiErr, ok := AsAPIError(err); ok && (apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnauthorized) {
			return account.Session{}, account.ErrInvalidCredentials
		}
		return account.Session{}, err
	}

	r, ok := asRecord(payload)
	if !ok {
		return account.Session{}, core.NewFetchError(core.FetchPayload, accountResource, errors.Wrapf(errShape, "got %T", payload))
	}
	access, ok := r.str("access", "token")
	if !ok {
		return account.Session{}, core.NewFetchError(core.FetchPayload, accountResource, errors.New("access token missing"))
	}
	sess := account.Session{Access: access, Refresh: r.strOr("", "refresh")}
	if u, ok := r.lookup("user"); ok {
		if ur, ok := asRecord(u); ok {
			sess.Admin = normalizeAdmin(ur)
		}
	}
	return sess, nil
}

func (repo *accountRepository) Profile(ctx context.Context) (account.Admin, error) {
	payload, err := repo.client.get(ctx, accountResource, "/accounts/admins/profile/", nil)
	if err != nil {
		return account.Admin{}, err
	}
	r, ok := asRecord(payload)
	if !ok {
		return account.Admin{}, core.NewFetchError(core.FetchPayload, accountResource, errors.Wrapf(errShape, "got %T", payload))
	}
	if u, ok := r.lookup("user"); ok {
		if ur, ok := asRecord(u); ok {
			r = ur
		}
	}
	return normalizeAdmin(r), nil
}

func normalizeAdmin(r record) account.Admin {
	adm := account.Admin{
		ID:          r.intOr(0, "id", "pk"),
		Email:       r.strOr("", "email"),
		FullName:    r.strOr("", "full_name", "nom_complet"),
		IsStaff:     r.boolean("is_staff"),
		IsSuperuser: r.boolean("is_superuser"),
	}
	if adm.FullName == "" {
		first := r.strOr("", "first_name", "prenom")
		last := r.strOr("", "last_name", "nom")
		adm.FullName = core.CleanString(first + " " + last)
	}
	return adm
}
