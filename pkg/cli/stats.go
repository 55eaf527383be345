package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func statsCommand() *cli.Command {
	var (
		cfg    config
		userID model.UserID
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
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "stats",
		Usage: "Show usage statistics of a user",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.loggerContext(ctx)

			uc, err := cfg.newChatUseCase(ctx)
			if err != nil {
				return err
			}

			stats, err := uc.Stats(ctx, userID)
			if err != nil {
				return goerr.Wrap(err, "failed to get stats")
			}

			fmt.Fprintf(c.Root().Writer, "conversations:\t%d\n", stats.TotalConversations)
			fmt.Fprintf(c.Root().Writer, "messages:\t%d\n", stats.TotalMessages)
			fmt.Fprintf(c.Root().Writer, "tokens used:\t%d\n", stats.TotalTokensUsed)
			fmt.Fprintf(c.Root().Writer, "avg messages:\t%.2f\n", stats.AverageMessages)

			return nil
		},
	}
}
