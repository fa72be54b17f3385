package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ndview/xnd/ndt"
	"github.com/ndview/xnd/xnd"
)

func newTransposeCmd() *cobra.Command {
	var typeStr, permuteStr string

	cmd := &cobra.Command{
		Use:   "transpose <file>",
		Short: "Permute an ndarray's axes without copying",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := ndt.Parse(typeStr)
			if err != nil {
				return err
			}
			m, err := xnd.FromFile(args[0], t, nil)
			if err != nil {
				return err
			}
			defer m.Close()

			var permute []int
			if permuteStr != "" {
				permute, err = parsePermute(permuteStr)
				if err != nil {
					return err
				}
			}

			tv, xerr := xnd.Transpose(m.View, permute)
			if xerr != nil {
				return xerr
			}
			shape, _, _, _ := tv.Type.NDArrayShape()
			fmt.Printf("transposed shape: %v\n", shape)
			return nil
		},
	}
	cmd.Flags().StringVar(&typeStr, "type", "", "type string describing the buffer's layout")
	cmd.Flags().StringVar(&permuteStr, "permute", "", "comma-separated axis permutation, e.g. 1,0,2 (default: reverse all axes)")
	return cmd
}

func parsePermute(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	permute := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid permutation component %q: %w", p, err)
		}
		permute[i] = n
	}
	return permute, nil
}
