package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndview/xnd/ndt"
	"github.com/ndview/xnd/xnd"
)

func newSplitCmd() *cobra.Command {
	var typeStr string
	var n int64
	var maxOuter int

	cmd := &cobra.Command{
		Use:   "split <file>",
		Short: "Partition up to max-outer leading axes into n balanced parts",
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

			requested := n
			parts, err := xnd.Split(&m.View, &n, maxOuter)
			if err != nil {
				return err
			}
			if n != requested {
				fmt.Printf("n adjusted from %d to %d\n", requested, n)
			}
			for i, p := range parts {
				fmt.Printf("part %d: shape=%d\n", i, p.Type.FixedShape)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&typeStr, "type", "", "type string describing the buffer's layout")
	cmd.Flags().Int64Var(&n, "n", 1, "number of parts")
	cmd.Flags().IntVar(&maxOuter, "max-outer", xnd.MaxDim, "maximum number of leading axes to partition across")
	return cmd
}
