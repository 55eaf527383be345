package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func deleteCommand() *cli.Command {
	var (
		cfg            config
		userID         model.UserID
		conversationID model.ConversationID
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Conversation ID to delete",
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
		Name:  "delete",
		Usage: "Delete a conversation and all of its messages",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.loggerContext(ctx)

			uc, err := cfg.newChatUseCase(ctx)
			if err != nil {
				return err
			}

			if err := uc.DeleteConversation(ctx, conversationID, userID); err != nil {
				return goerr.Wrap(err, "failed to delete conversation")
			}

			fmt.Fprintf(c.Root().Writer, "deleted %s\n", conversationID)
			return nil
		},
	}
}
