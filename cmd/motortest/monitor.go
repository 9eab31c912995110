package main

import (
	"os"

	"github.com/calvinmclean/motortest/controller"

	"github.com/spf13/cobra"
)

func newMonitorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Open the board's console. Each line typed is sent as commands, e.g. P, N, G05, I25",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := controller.New(cfg)
			if err != nil {
				return err
			}
			defer c.Close()

			// start with the list of commands the board understands
			err = c.Help()
			if err != nil {
				return err
			}

			return c.Run(cmd.Context(), os.Stdin, os.Stdout)
		},
	}
}
