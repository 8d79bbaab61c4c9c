// Command thaidoc generates Thai financial documents from JSON drafts:
// validation, totals, amount-in-words, and PDF/XML/HTML rendering.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/tanakrit-dev/thaidoc/internal/bahttext"
	"github.com/tanakrit-dev/thaidoc/internal/document"
	"github.com/tanakrit-dev/thaidoc/internal/exportjob"
	"github.com/tanakrit-dev/thaidoc/internal/render"
)

func main() {
	_ = godotenv.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	app := &cli.App{
		Name:  "thaidoc",
		Usage: "generate Thai quotations, invoices and receipts",
		Commands: []*cli.Command{
			bahtTextCommand(),
			totalsCommand(),
			validateCommand(),
			renderCommand(),
			exportCommand(logger),
		},
	}
	if err := app.Run(os.Args); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func bahtTextCommand() *cli.Command {
	return &cli.Command{
		Name:      "baht-text",
		Usage:     "spell out an amount in Thai",
		ArgsUsage: "AMOUNT",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("usage: thaidoc baht-text AMOUNT", 2)
			}
			fmt.Println(bahttext.Parse(c.Args().First()))
			return nil
		},
	}
}

func totalsCommand() *cli.Command {
	return &cli.Command{
		Name:      "totals",
		Usage:     "print the financial summary of a draft",
		ArgsUsage: "DRAFT.json",
		Action: func(c *cli.Context) error {
			draft, err := loadDraft(c.Args().First())
			if err != nil {
				return err
			}
			return printJSON(draft.Totals())
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check a draft before rendering",
		ArgsUsage: "DRAFT.json",
		Action: func(c *cli.Context) error {
			draft, err := loadDraft(c.Args().First())
			if err != nil {
				return err
			}
			v := document.Validator{Config: document.LoadConfig()}
			result := v.Validate(draft)
			if err := printJSON(result); err != nil {
				return err
			}
			if !result.Valid {
				return cli.Exit("draft is invalid", 1)
			}
			return nil
		},
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "render one draft to a file",
		ArgsUsage: "DRAFT.json",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "pdf", Usage: "pdf, xml or html"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output path (defaults to the document number)"},
		},
		Action: func(c *cli.Context) error {
			format, err := render.ParseFormat(c.String("format"))
			if err != nil {
				return err
			}
			draft, err := loadDraft(c.Args().First())
			if err != nil {
				return err
			}

			cfg := document.LoadConfig()
			result := (document.Validator{Config: cfg}).Validate(draft)
			for _, item := range result.Errors {
				slog.Warn("validation finding", "code", item.Code, "path", item.Path, "message", item.Message)
			}
			if !result.Valid {
				return cli.Exit("draft is invalid, not rendering", 1)
			}

			artifact, err := render.NewExporter(cfg, format).Render(c.Context, draft)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}

			out := c.String("out")
			if out == "" {
				out = artifact.Name
			}
			if err := os.WriteFile(out, artifact.Body, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			slog.Info("document rendered", "file", out, "bytes", len(artifact.Body))
			return nil
		},
	}
}

func exportCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "batch-render drafts into an output directory",
		ArgsUsage: "DRAFT.json [DRAFT.json...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "pdf", Usage: "pdf, xml or html"},
			&cli.StringFlag{Name: "out-dir", Aliases: []string{"d"}, Usage: "output directory"},
		},
		Action: func(c *cli.Context) error {
			format, err := render.ParseFormat(c.String("format"))
			if err != nil {
				return err
			}
			if c.NArg() == 0 {
				return cli.Exit("no drafts given", 2)
			}

			drafts := make([]document.Draft, 0, c.NArg())
			for _, path := range c.Args().Slice() {
				draft, err := loadDraft(path)
				if err != nil {
					return err
				}
				drafts = append(drafts, draft)
			}

			docCfg := document.LoadConfig()
			jobCfg := exportjob.LoadConfig()
			if dir := c.String("out-dir"); dir != "" {
				jobCfg.OutputDir = dir
			}

			queue := exportjob.NewQueue(
				render.NewExporter(docCfg, format),
				exportjob.DirStorage{Root: jobCfg.OutputDir},
				jobCfg,
				logger,
			)
			job, err := queue.Enqueue(drafts)
			if err != nil {
				return err
			}
			logger.Info("export started", "job", job.JobID, "documents", job.Documents)

			for {
				current, ok := queue.Get(job.JobID.String())
				if !ok {
					return exportjob.ErrNotFound
				}
				if current.Status.Terminal() {
					if current.Status != exportjob.Succeeded {
						return cli.Exit(fmt.Sprintf("export %s: %s", current.Status, current.Error), 1)
					}
					for _, f := range current.Files {
						fmt.Println(f)
					}
					logger.Info("export finished", "job", job.JobID, "files", len(current.Files))
					return nil
				}
				time.Sleep(200 * time.Millisecond)
			}
		},
	}
}

func loadDraft(path string) (document.Draft, error) {
	if path == "" {
		return document.Draft{}, cli.Exit("a draft file is required", 2)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return document.Draft{}, fmt.Errorf("read draft: %w", err)
	}
	var draft document.Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return document.Draft{}, fmt.Errorf("parse draft %s: %w", path, err)
	}
	return draft, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
