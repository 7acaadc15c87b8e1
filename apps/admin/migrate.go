package main

import (
	"errors"

	"github.com/Zhalalov2-code/online-course/storage/database"
)

var (
	gooseRunFunc = database.Migrate // mockable

	errNoDatabase = errors.New("the memory engine has nothing to migrate")
)

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errNoDatabase
	}
	return gooseRunFunc(cli.db, cli.conf.Database.Engine, args[0], args[1:]...)
}
