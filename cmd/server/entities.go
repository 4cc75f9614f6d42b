package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/JonMunkholm/salesadmin/internal/core"
	"github.com/spf13/cobra"
)

func entitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entities",
		Short: "List registered entities and option lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ENTITY\tTABLE\tKEY\tPRIMARY KEY\tFIELDS")
			for _, e := range core.All() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
					e.Name, e.Table, e.RecordKey, strings.Join(e.PrimaryKey, "+"), len(e.Fields))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), "OPTION LISTS")
			for _, name := range core.OptionNames() {
				fmt.Fprintln(cmd.OutOrStdout(), "  "+name)
			}
			return nil
		},
	}
}
