package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ndview/xnd/ndt"
	"github.com/ndview/xnd/xnd"
)

func newReshapeCmd() *cobra.Command {
	var typeStr, shapeStr string
	var fOrder bool

	cmd := &cobra.Command{
		Use:   "reshape <file>",
		Short: "Report whether a no-copy reshape to a new shape is possible",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := ndt.Parse(typeStr)
			if err != nil {
				return err
			}
			shape, err := parseShape(shapeStr)
			if err != nil {
				return err
			}

			m, err := xnd.FromFile(args[0], t, nil)
			if err != nil {
				return err
			}
			defer m.Close()

			order := xnd.CContiguous
			if fOrder {
				order = xnd.FContiguous
			}
			reshaped, err := xnd.Reshape(t, shape, order)
			if err != nil {
				return err
			}
			fmt.Printf("no-copy reshape ok: ndim=%d datasize=%d\n", reshaped.NDim(), reshaped.DataSize())
			return nil
		},
	}
	cmd.Flags().StringVar(&typeStr, "type", "", "type string describing the buffer's current layout")
	cmd.Flags().StringVar(&shapeStr, "shape", "", "comma-separated target shape, e.g. 2,3,4")
	cmd.Flags().BoolVar(&fOrder, "f-order", false, "target layout is F-contiguous instead of C-contiguous")
	return cmd
}

func parseShape(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	shape := make([]int64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid shape component %q: %w", p, err)
		}
		shape[i] = n
	}
	return shape, nil
}
