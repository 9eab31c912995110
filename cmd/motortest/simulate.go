package main

import (
	"context"
	"fmt"

	"github.com/calvinmclean/motortest"
	"github.com/calvinmclean/motortest/simulator"

	"github.com/spf13/cobra"
)

func newSimulateCommand() *cobra.Command {
	var ticks int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the sequence against simulated outputs and print each step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := motortest.DefaultTable
			if cfg.TablePath != "" {
				var err error
				table, err = simulator.LoadTableFile(cfg.TablePath)
				if err != nil {
					return err
				}
			}

			outputs := simulator.NewOutputs(simulator.DefaultHistorySize)
			seq, err := motortest.New(table, outputs)
			if err != nil {
				return err
			}
			seq.Initialize()

			i := cfg.Interval
			if i <= 0 {
				i = motortest.DefaultInterval
			}
			log.Infof("simulating %d steps every %s", seq.Len(), i)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			count := 0
			seq.Run(ctx, i, func(applied int, step motortest.Step) {
				fmt.Fprintln(cmd.OutOrStdout(), motortest.FormatStatus(applied, seq.Len(), step))
				count++
				if ticks > 0 && count >= ticks {
					cancel()
				}
			})

			seq.Initialize()
			log.Infof("stopped after %d steps, all motors off", count)
			return nil
		},
	}

	cmd.Flags().IntVarP(&ticks, "ticks", "n", 0, "stop after this many steps, 0 runs until interrupted")

	return cmd
}
