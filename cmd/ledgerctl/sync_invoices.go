package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func syncInvoicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync-invoices",
		Short: "Pull invoices from the upstream feed and upsert them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			injector, closeApp, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp()

			out, err := injector.SyncInvoices.Execute(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "fetched %d, synced %d (created %d, updated %d, rounded %d), failed %d\n",
				out.Fetched, out.Synced, out.Created, out.Updated, out.Rounded, len(out.Failures))
			for _, f := range out.Failures {
				fmt.Fprintf(w, "  %s %s: %s\n", f.ExternalID, f.InvoiceNumber, f.Reason)
			}
			if len(out.Failures) > 0 {
				return fmt.Errorf("%d invoice(s) failed to sync", len(out.Failures))
			}
			return nil
		},
	}
}
