package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Zhalalov2-code/online-course/apps/shared"
	"github.com/Zhalalov2-code/online-course/core"
)

func main() {
	conf, err := core.NewConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger := shared.NewLogger("ADMIN : ", conf)

	storage, err := shared.OpenStorage(conf.Database)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
	}
	svcs := shared.NewServices(conf, logger, storage)

	// start CLI
	cli := commandLine{
		conf:    conf,
		usrSvc:  svcs.User,
		tracker: svcs.Tracker,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
	}
	if storage.DB != nil {
		cli.db = storage.DB.DB
	}

	err = cli.run(os.Args)
	_ = storage.Close()
	if err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %s", err), err)
		}
		os.Exit(1)
	}
}
