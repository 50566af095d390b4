package cli

import (
	"context"
	"flag"
	"fmt"
)

func (a *App) runAuth(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: shopctl auth signup|login|logout|whoami")
	}

	switch args[0] {
	case "signup":
		fs := flag.NewFlagSet("auth signup", flag.ContinueOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		name := fs.String("name", "", "display name")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *email == "" || *password == "" {
			return fmt.Errorf("auth signup requires --email and --password")
		}
		if err := a.Auth.SignUp(ctx, *email, *password, *name); err != nil {
			return err
		}
		a.printf("signed up as %s\n", *email)
		return nil

	case "login":
		fs := flag.NewFlagSet("auth login", flag.ContinueOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *email == "" || *password == "" {
			return fmt.Errorf("auth login requires --email and --password")
		}
		if err := a.Auth.SignIn(ctx, *email, *password); err != nil {
			return err
		}
		a.printf("logged in as %s\n", *email)
		return nil

	case "logout":
		a.Auth.Logout(ctx)
		a.printf("logged out\n")
		return nil

	case "whoami":
		session := a.Auth.Session()
		if session == nil || session.User == nil {
			a.printf("not logged in\n")
			return nil
		}
		a.printf("%s <%s> (%s)\n", session.User.Name, session.User.Email, session.User.Role)
		return nil

	default:
		return fmt.Errorf("unknown auth subcommand %q", args[0])
	}
}
