package main

import (
	"fmt"
	"runtime"

	"github.com/born-ml/ewise/backend/cpu"
	"github.com/born-ml/ewise/backend/webgpu"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show available backends and CPU features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "platform:  %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(w, "features:  %s\n", cpu.Features())
			fmt.Fprintf(w, "cpu:       %s\n", cpu.New().Name())

			gpu, err := webgpu.New()
			if err != nil {
				fmt.Fprintf(w, "webgpu:    unavailable (%v)\n", err)
				return nil
			}
			defer gpu.Release()
			fmt.Fprintf(w, "webgpu:    %s\n", gpu.Name())
			return nil
		},
	}
}
