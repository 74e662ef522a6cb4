package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/docforge/internal/errs"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <payload.json|->",
		Short: "Classify and validate a payload without rendering it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			engine, err := a.engine()
			if err != nil {
				return err
			}

			p := a.printer()
			req, blocks, err := engine.Compose(payload)
			if err != nil {
				var ve *errs.ValidationError
				if errors.As(err, &ve) {
					p.PrintValidationErrors(ve)
				}
				return err
			}

			if a.cfg.Verbose {
				p.PrintRequest(req)
				p.PrintBlocks(blocks)
			}
			p.PrintValidationErrors(nil)
			_, _ = fmt.Fprintf(a.stdout, "%s payload composes to %d blocks\n", req.Kind, len(blocks))
			return nil
		},
	}
}
