package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/atlas/pkg/usecase/chat"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func newCommand() *cli.Command {
	var (
		cfg    config
		userID model.UserID
		title  string
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
		&cli.StringFlag{
			Name:        "title",
			Aliases:     []string{"t"},
			Usage:       "Conversation title (generated from the query when omitted)",
			Destination: &title,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:      "new",
		Usage:     "Create a conversation from its opening query",
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

			result, err := uc.CreateConversation(ctx, chat.CreateInput{
				OwnerID: userID,
				Query:   query,
				Title:   title,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to create conversation")
			}

			fmt.Fprintf(c.Root().Writer, "conversation: %s\n\n%s\n", result.ConversationID, result.Answer)
			return nil
		},
	}
}
