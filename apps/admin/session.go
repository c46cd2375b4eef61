package main

import (
	"context"
	"fmt"

	"github.com/arbitres/console/core/account"
)

// login authenticates with the backend and prints the env var that keeps the session.
func (cli *commandLine) login(email, pwd string) error {
	creds := account.Credentials{Email: email, Password: pwd}
	if err := creds.Validate(cli.validate); err != nil {
		return err
	}
	sess, err := cli.svcs.Account.Login(context.Background(), creds)
	if err != nil {
		return err
	}
	cli.token = sess.Access

	fmt.Fprintf(cli.out, "Logged in as %s <%s>\n", sess.Admin.FullName, sess.Admin.Email)
	fmt.Fprintf(cli.out, "export %s_BACKEND_ACCESSTOKEN=%s\n", cli.conf.Env, sess.Access)
	return nil
}
