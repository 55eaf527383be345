package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/atlas/pkg/usecase/chat"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func chatCommand() *cli.Command {
	var (
		cfg            config
		userID         model.UserID
		conversationID model.ConversationID
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Conversation ID to continue (a new conversation starts when omitted)",
			Sources:     cli.EnvVars("ATLAS_CONVERSATION_ID"),
			Destination: (*string)(&conversationID),
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
		Name:  "chat",
		Usage: "Interactive conversation",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.loggerContext(ctx)

			uc, err := cfg.newChatUseCase(ctx)
			if err != nil {
				return err
			}

			rl, err := readline.New("> ")
			if err != nil {
				return goerr.Wrap(err, "failed to initialize readline")
			}
			defer rl.Close()

			fmt.Fprintf(c.Root().Writer, "Chat session started. Type 'exit' to quit.\n")

			for {
				message, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return goerr.Wrap(err, "failed to read input")
				}

				if message == "exit" {
					break
				}
				if message == "" {
					continue
				}

				sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				sp.Suffix = " generating..."
				sp.Start()

				var result *chat.QueryResult
				if conversationID == "" {
					result, err = uc.CreateConversation(ctx, chat.CreateInput{
						OwnerID: userID,
						Query:   message,
					})
				} else {
					result, err = uc.SubmitQuery(ctx, chat.QueryInput{
						ConversationID: conversationID,
						OwnerID:        userID,
						Query:          message,
					})
				}
				sp.Stop()

				if err != nil {
					return goerr.Wrap(err, "failed to process query")
				}

				if conversationID == "" {
					conversationID = result.ConversationID
					fmt.Fprintf(c.Root().Writer, "[conversation %s]\n", conversationID)
				}
				fmt.Fprintf(c.Root().Writer, "%s\n", result.Answer)
			}

			fmt.Fprintf(c.Root().Writer, "\nChat session completed\n")
			return nil
		},
	}
}
