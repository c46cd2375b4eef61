package main

import (
	"fmt"
	"log"
	"os"

	"github.com/arbitres/console/apps/shared"
	"github.com/arbitres/console/core"
	emailsvc "github.com/arbitres/console/services/email"
	logsvc "github.com/arbitres/console/services/logger"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(false)

	svcs, err := shared.NewServices(conf, logger, emailsvc.NewService(conf, logger))
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up services: %v", err), err)
	}

	validate, _ := shared.NewValidator()
	cli := newCommandLine(conf, svcs, validate, os.Stdout)

	err = cli.run(os.Args)
	_ = svcs.Close()
	if err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
