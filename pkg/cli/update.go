package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/atlas/pkg/usecase/chat"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func updateCommand() *cli.Command {
	var (
		cfg            config
		userID         model.UserID
		conversationID model.ConversationID
		title          string
		description    string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Conversation ID to update",
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
		&cli.StringFlag{
			Name:        "title",
			Aliases:     []string{"t"},
			Usage:       "New title",
			Destination: &title,
		},
		&cli.StringFlag{
			Name:        "description",
			Usage:       "New description",
			Destination: &description,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "update",
		Usage: "Update title or description of a conversation",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.loggerContext(ctx)

			var input chat.UpdateInput
			if c.IsSet("title") {
				input.Title = &title
			}
			if c.IsSet("description") {
				input.Description = &description
			}
			if input.Title == nil && input.Description == nil {
				return goerr.New("either title or description is required")
			}

			uc, err := cfg.newChatUseCase(ctx)
			if err != nil {
				return err
			}

			conv, err := uc.UpdateConversation(ctx, conversationID, userID, input)
			if err != nil {
				return goerr.Wrap(err, "failed to update conversation")
			}

			fmt.Fprintf(c.Root().Writer, "%s\t%s\n", conv.ID, conv.Title)
			return nil
		},
	}
}
