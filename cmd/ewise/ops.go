package main

import (
	"strconv"

	"github.com/born-ml/ewise/ops"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the operation catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var data [][]string
			for _, op := range ops.Catalog() {
				operand := "-"
				if op.UsesOperand() {
					operand = "y"
				}
				data = append(data, []string{
					strconv.Itoa(int(op)),
					op.String(),
					strconv.Itoa(op.Arity()),
					operand,
					strconv.Itoa(op.ExtraLen()),
				})
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"CODE", "NAME", "ARITY", "OPERAND", "EXTRA"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("    ")
			table.AppendBulk(data)
			table.Render()
			return nil
		},
	}
}
