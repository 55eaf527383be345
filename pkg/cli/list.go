package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func listCommand() *cli.Command {
	var (
		cfg     config
		userID  model.UserID
		preview bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user-id",
			Aliases:     []string{"u"},
			Usage:       "Owner user ID",
			Sources:     cli.EnvVars("ATLAS_USER_ID"),
			Destination: (*string)(&userID),
			Required:    true,
		},
		&cli.BoolFlag{
			Name:        "preview",
			Usage:       "Include message count and the latest message",
			Destination: &preview,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "list",
		Usage: "List active conversations of a user",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.loggerContext(ctx)

			uc, err := cfg.newChatUseCase(ctx)
			if err != nil {
				return err
			}

			summaries, err := uc.ListConversations(ctx, userID, preview)
			if err != nil {
				return goerr.Wrap(err, "failed to list conversations")
			}

			for _, s := range summaries {
				fmt.Fprintf(c.Root().Writer, "%s\t%s\t%s", s.ID, s.Title, s.UpdatedAt.Format("2006-01-02 15:04"))
				if preview {
					fmt.Fprintf(c.Root().Writer, "\t%d messages", s.MessageCount)
					if s.LastMessage != nil {
						fmt.Fprintf(c.Root().Writer, "\t%s: %s", s.LastMessage.Role, s.LastMessage.Content)
					}
				}
				fmt.Fprintln(c.Root().Writer)
			}

			return nil
		},
	}
}
