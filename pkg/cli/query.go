package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/atlas/pkg/usecase/chat"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func queryCommand() *cli.Command {
	var (
		cfg            config
		userID         model.UserID
		conversationID model.ConversationID
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Conversation ID",
			Sources:     cli.EnvVars("ATLAS_CONVERSATION_ID"),
			Destination: (*string)(&conversationID),
			Required:    true,
		},
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
		Name:      "query",
		Usage:     "Submit a query to an existing conversation",
		ArgsUsage: "<query>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			query := c.Args().First()
			if query == "" {
				return goerr.New("query is required")
			}
			ctx = cfg.loggerContext(ctx)

			uc, err := cfg.newChatUseCase(ctx)
			if err != nil {
				return err
			}

			result, err := uc.SubmitQuery(ctx, chat.QueryInput{
				ConversationID: conversationID,
				OwnerID:        userID,
				Query:          query,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to submit query")
			}

			fmt.Fprintf(c.Root().Writer, "%s\n", result.Answer)
			return nil
		},
	}
}
