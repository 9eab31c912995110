package main

import (
	"fmt"

	"github.com/calvinmclean/motortest"
	"github.com/calvinmclean/motortest/simulator"

	"github.com/spf13/cobra"
)

func newTableCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Work with step table files",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "print",
			Short: "Print the default table as YAML, a starting point for custom tables",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				data, err := simulator.MarshalTable(motortest.DefaultTable)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			},
		},
		&cobra.Command{
			Use:   "validate FILE",
			Short: "Check a table file and list its steps",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				table, err := simulator.LoadTableFile(args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for i, step := range table {
					fmt.Fprintln(out, motortest.FormatStatus(i, len(table), step))
				}
				fmt.Fprintf(out, "%d steps OK\n", len(table))
				return nil
			},
		},
	)

	return cmd
}
