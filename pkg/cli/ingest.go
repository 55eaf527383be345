package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/atlas/pkg/adapter"
	"github.com/m-mizutani/atlas/pkg/usecase/ingest"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func ingestCommand() *cli.Command {
	var (
		cfg      config
		manifest string
		bucket   string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "manifest",
			Aliases:     []string{"m"},
			Usage:       "Path to YAML manifest listing documents to index",
			Sources:     cli.EnvVars("ATLAS_INGEST_MANIFEST"),
			Destination: &manifest,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "bucket",
			Aliases:     []string{"b"},
			Usage:       "Cloud Storage bucket for manifest entries referencing objects",
			Sources:     cli.EnvVars("ATLAS_CORPUS_BUCKET"),
			Destination: &bucket,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "ingest",
		Usage: "Index corpus documents for retrieval",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.loggerContext(ctx)

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return err
			}

			var storage adapter.Storage
			if bucket != "" {
				storage, err = adapter.NewStorage(ctx, bucket)
				if err != nil {
					return err
				}
			}

			file, err := os.Open(manifest)
			if err != nil {
				return goerr.Wrap(err, "failed to open manifest", goerr.V("path", manifest))
			}
			defer file.Close()

			uc := ingest.New(repo, gemini, storage)
			count, err := uc.Run(ctx, file)
			if err != nil {
				return goerr.Wrap(err, "failed to ingest documents")
			}

			fmt.Fprintf(c.Root().Writer, "indexed %d documents\n", count)
			return nil
		},
	}
}
