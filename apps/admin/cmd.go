package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/Zhalalov2-code/online-course/core"
	"github.com/Zhalalov2-code/online-course/core/normalize"
	"github.com/Zhalalov2-code/online-course/core/quiz"
	"github.com/Zhalalov2-code/online-course/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf    *core.Config
	db      *sql.DB // nil for the memory engine
	usrSvc  user.Service
	tracker *quiz.Tracker
	stdin   io.Reader
	stdout  io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.stdout, "Usage:")
	fmt.Fprintln(cli.stdout, "  migrate COMMAND [ARGS...]                - run a goose migration command (up, down, status...)")
	fmt.Fprintln(cli.stdout, "  normalize -kind KIND [-file PATH]        - normalize a raw backend payload read from PATH or stdin")
	fmt.Fprintln(cli.stdout, "  login -email EMAIL                       - log in and print an API token; the password is prompted")
	fmt.Fprintln(cli.stdout, "  completed -user ID [-add TEST_ID]        - show or update the tests a user completed")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	normalizeCmd := flag.NewFlagSet("normalize", flag.ExitOnError)
	normalizeKind := normalizeCmd.String("kind", "", fmt.Sprintf("The payload kind, one of %v.", normalize.Kinds()))
	normalizeFile := normalizeCmd.String("file", "", "The file holding the payload. Reads stdin when empty.")

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginEmail := loginCmd.String("email", "", "The user's email. The password will be prompted next.")

	completedCmd := flag.NewFlagSet("completed", flag.ExitOnError)
	completedUser := completedCmd.String("user", "", "The user ID.")
	completedAdd := completedCmd.String("add", "", "A test ID to mark as completed.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "normalize":
		if err := normalizeCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *normalizeKind == "" {
			normalizeCmd.Usage()
			return errHelp
		}
		return cli.normalize(*normalizeKind, *normalizeFile)
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.stdout, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.stdout)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginEmail, string(pwd))
	case "completed":
		if err := completedCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *completedUser == "" {
			completedCmd.Usage()
			return errHelp
		}
		return cli.completed(*completedUser, *completedAdd)
	default:
		cli.printUsage()
		return errHelp
	}
}
