package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/born-ml/ewise/backend/cpu"
	"github.com/born-ml/ewise/backend/webgpu"
	"github.com/born-ml/ewise/ops"
	"github.com/born-ml/ewise/tensor"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type benchOptions struct {
	op         string
	size       int
	iterations int
	workers    int
	gpu        bool
}

// benchLayout produces the input and output views for one iteration
// strategy over n elements.
type benchLayout struct {
	name  string
	build func(n int) (in, out tensor.View[float32], err error)
}

var benchLayouts = []benchLayout{
	{"contiguous", func(n int) (tensor.View[float32], tensor.View[float32], error) {
		in, err := tensor.FromSlice(make([]float32, n), tensor.Shape{n}, tensor.RowMajor)
		if err != nil {
			return in, in, err
		}
		out, err := tensor.FromSlice(make([]float32, n), tensor.Shape{n}, tensor.RowMajor)
		return in, out, err
	}},
	{"strided", func(n int) (tensor.View[float32], tensor.View[float32], error) {
		desc, err := tensor.NewDescriptor(tensor.Shape{n}, []int{2}, tensor.RowMajor, 0)
		if err != nil {
			return tensor.View[float32]{}, tensor.View[float32]{}, err
		}
		in, err := tensor.NewView(make([]float32, 2*n), desc)
		if err != nil {
			return in, in, err
		}
		out, err := tensor.FromSlice(make([]float32, n), tensor.Shape{n}, tensor.RowMajor)
		return in, out, err
	}},
	{"general", func(n int) (tensor.View[float32], tensor.View[float32], error) {
		rows := max(n/256, 1)
		cols := n / rows
		in, err := tensor.FromSlice(make([]float32, rows*cols), tensor.Shape{rows, cols}, tensor.RowMajor)
		if err != nil {
			return in, in, err
		}
		desc, err := tensor.NewDescriptor(tensor.Shape{rows, cols}, []int{1, rows}, tensor.ColumnMajor, 0)
		if err != nil {
			return in, in, err
		}
		out, err := tensor.NewView(make([]float32, rows*cols), desc)
		return in, out, err
	}},
}

func newBenchCmd() *cobra.Command {
	var opts benchOptions

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time one operation across layouts and backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.op, "op", "add", "Operation name (see 'ewise ops')")
	cmd.Flags().IntVarP(&opts.size, "size", "n", 1<<20, "Number of elements")
	cmd.Flags().IntVar(&opts.iterations, "iterations", 20, "Timed iterations per row")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "CPU workers (0 = one per CPU)")
	cmd.Flags().BoolVar(&opts.gpu, "gpu", true, "Include the WebGPU backend when available")
	return cmd
}

func runBench(cmd *cobra.Command, opts benchOptions) error {
	op, err := ops.Parse(opts.op)
	if err != nil {
		return err
	}
	if opts.size < 1 || opts.iterations < 1 {
		return fmt.Errorf("size and iterations must be positive, got %d and %d", opts.size, opts.iterations)
	}

	cfg := cpu.DefaultConfig()
	if opts.workers > 0 {
		cfg.NumWorkers = opts.workers
	}
	backends := []tensor.Backend{cpu.NewWithConfig(cfg)}
	if opts.gpu {
		gpu, gpuErr := webgpu.New()
		if gpuErr != nil {
			slog.Debug("bench: skipping webgpu", "error", gpuErr)
		} else {
			defer gpu.Release()
			backends = append(backends, gpu)
		}
	}

	var data [][]string
	for _, b := range backends {
		for _, layout := range benchLayouts {
			in, out, err := layout.build(opts.size)
			if err != nil {
				return err
			}
			elapsed, err := timeTransform(b, op, in, out, opts.iterations)
			if err != nil {
				return fmt.Errorf("%s %s: %w", b.Name(), layout.name, err)
			}
			count := in.Desc().Count()
			perOp := elapsed / time.Duration(opts.iterations)
			// One read and one write of float32 per element.
			gbps := float64(count*8) / perOp.Seconds() / 1e9
			data = append(data, []string{
				b.Name(),
				layout.name,
				fmt.Sprint(count),
				perOp.String(),
				fmt.Sprintf("%.2f", gbps),
			})
		}
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"BACKEND", "LAYOUT", "ELEMENTS", "TIME/OP", "GB/S"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
	return nil
}

// timeTransform runs one untimed warm-up call, then times iterations calls.
func timeTransform(b tensor.Backend, op ops.Code, in, out tensor.View[float32], iterations int) (time.Duration, error) {
	extra := make([]float32, op.ExtraLen())
	if len(extra) == 2 {
		extra[0], extra[1] = -1, 1
	}
	if err := tensor.ScalarTransform(b, op, in, out, 1, extra...); err != nil {
		return 0, err
	}

	start := time.Now()
	for range iterations {
		if err := tensor.ScalarTransform(b, op, in, out, 1, extra...); err != nil {
			return 0, err
		}
	}
	return time.Since(start), nil
}
