package main

import (
	"context"
	"fmt"

	echoapi "github.com/Zhalalov2-code/online-course/apps/api/echo"
)

// login authenticates against the backend and prints an API token.
func (cli *commandLine) login(email, pwd string) error {
	usr, err := cli.usrSvc.Login(context.Background(), email, pwd)
	if err != nil {
		return err
	}
	token, err := echoapi.GenerateToken(cli.conf, usr)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.stdout, "Logged in as %s <%s> (%s)\n%s\n", usr.Name, usr.Email, usr.Role, token)
	return nil
}
