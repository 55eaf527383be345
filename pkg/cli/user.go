package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func userCommand() *cli.Command {
	var (
		cfg       config
		email     string
		firstName string
		lastName  string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "email",
			Usage:       "Email address of the user",
			Destination: &email,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "first-name",
			Usage:       "First name",
			Destination: &firstName,
		},
		&cli.StringFlag{
			Name:        "last-name",
			Usage:       "Last name",
			Destination: &lastName,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "user",
		Usage: "Register a user who can own conversations",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.loggerContext(ctx)

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			user := &model.User{
				ID:        model.NewUserID(),
				Email:     email,
				FirstName: firstName,
				LastName:  lastName,
				CreatedAt: time.Now(),
			}
			if err := repo.PutUser(ctx, user); err != nil {
				return goerr.Wrap(err, "failed to register user")
			}

			fmt.Fprintf(c.Root().Writer, "%s\n", user.ID)
			return nil
		},
	}
}
