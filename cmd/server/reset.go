package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/JonMunkholm/salesadmin/internal/admin"
	"github.com/JonMunkholm/salesadmin/internal/store"
	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every row of every entity table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return errors.New("reset deletes all data; pass --yes to confirm")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			handle, err := store.Open(cmd.Context(), storeOptions(cfg))
			if err != nil {
				return err
			}
			defer handle.Close()

			resets, err := admin.NewResetter(handle.Gateway).ResetAll(cmd.Context())
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ENTITY\tTABLE\tROWS")
			for _, r := range resets {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", r.Entity, r.Table, r.Rows)
			}
			if ferr := tw.Flush(); ferr != nil && err == nil {
				err = ferr
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&confirm, "yes", false, "confirm the reset")
	return cmd
}
