package main

import (
	"github.com/calvinmclean/motortest/ui"

	"github.com/spf13/cobra"
)

func newUICommand() *cobra.Command {
	var configure bool

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Show the desktop monitor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ui.Run(cmd.Context(), cfg, configure || cfg.SerialPort == "")
			return nil
		},
	}

	cmd.Flags().BoolVar(&configure, "configure", false, "show the configuration window even when a port is set")

	return cmd
}
