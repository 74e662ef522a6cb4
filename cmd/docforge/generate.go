package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "generate <payload.json|->",
		Short: "Render a JSON payload to a PDF file",
		Long: `Reads a payload from a file (or stdin with "-"), renders it and writes the PDF.

--out names the output file or directory. Without it the suggested filename is
used in the current directory; "-" writes the PDF to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			engine, err := a.engine()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			doc, err := engine.Generate(ctx, payload)
			if err != nil {
				return err
			}

			if out == "-" {
				_, err := a.stdout.Write(doc.Bytes)
				return err
			}

			path := doc.Filename
			if out != "" {
				path = out
				if info, err := os.Stat(out); err == nil && info.IsDir() {
					path = filepath.Join(out, doc.Filename)
				}
			}
			if err := os.WriteFile(path, doc.Bytes, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			if a.cfg.Verbose {
				a.printer().PrintDocument(doc)
			} else {
				_, _ = fmt.Fprintf(a.stdout, "Wrote %s (%d pages, %d bytes)\n", path, doc.Pages, doc.Length)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file or directory (\"-\" for stdout)")
	return cmd
}

// readPayload reads the payload from a file path, or from stdin when path is "-".
func readPayload(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file %s: %w", path, err)
	}
	return data, nil
}
