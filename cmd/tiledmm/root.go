// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options holds the flag values of one invocation.
type options struct {
	workers int
	blas    bool
	verbose bool
}

func (o *options) register(fs *pflag.FlagSet) {
	fs.IntVarP(&o.workers, "workers", "w", 0, "Number of parallel workers for the tiled kernel (0 = GOMAXPROCS)")
	fs.BoolVar(&o.blas, "blas", false, "Also multiply with gonum and verify it against the naive result")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Print diagnostics to stderr")
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "tiledmm <n>",
		Short: "Compare naive and tiled parallel multiplication of n×n matrices",
		// The argument count is checked in RunE: a wrong count is reported
		// but is not an error.
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				fmt.Fprintln(stdout, "Improper Arguments!!")
				return nil
			}
			n, err := parseDimension(args[0])
			if err != nil {
				return err
			}
			return run(n, *opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	opts.register(cmd.Flags())
	return cmd
}

func parseDimension(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid matrix dimension %q: must be a positive integer", arg)
	}
	return n, nil
}
