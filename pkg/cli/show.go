package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func showCommand() *cli.Command {
	var (
		cfg            config
		userID         model.UserID
		conversationID model.ConversationID
		noMessages     bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Conversation ID to show",
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
		&cli.BoolFlag{
			Name:        "no-messages",
			Usage:       "Show only the conversation, without its messages",
			Destination: &noMessages,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "show",
		Usage: "Show a conversation with its message history",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.loggerContext(ctx)

			uc, err := cfg.newChatUseCase(ctx)
			if err != nil {
				return err
			}

			detail, err := uc.GetConversation(ctx, conversationID, userID, !noMessages)
			if err != nil {
				return goerr.Wrap(err, "failed to get conversation")
			}

			data, err := json.MarshalIndent(detail, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to marshal conversation")
			}
			fmt.Fprintf(c.Root().Writer, "%s\n", data)

			return nil
		},
	}
}
