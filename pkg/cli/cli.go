package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	cmd := &cli.Command{
		Name:  "atlas",
		Usage: "RAG-backed conversation assistant",
		Commands: []*cli.Command{
			newCommand(),
			queryCommand(),
			chatCommand(),
			listCommand(),
			showCommand(),
			updateCommand(),
			deleteCommand(),
			statsCommand(),
			ingestCommand(),
			userCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
