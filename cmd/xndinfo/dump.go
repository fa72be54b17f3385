package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndview/xnd/ndt"
	"github.com/ndview/xnd/xnd"
)

func newDumpCmd() *cobra.Command {
	var typeStr string
	var readWrite bool

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the type summary and ownership flags of a memory-mapped buffer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if typeStr == "" {
				return fmt.Errorf("xndinfo dump: --type is required")
			}
			t, err := ndt.Parse(typeStr)
			if err != nil {
				return err
			}
			m, err := xnd.FromFile(args[0], t, &xnd.FileOptions{ReadWrite: readWrite})
			if err != nil {
				return err
			}
			defer m.Close()

			fmt.Fprintf(os.Stdout, "type: %s\n", typeStr)
			fmt.Fprintf(os.Stdout, "tag: %s\n", t.Tag)
			fmt.Fprintf(os.Stdout, "ndim: %d\n", t.NDim())
			fmt.Fprintf(os.Stdout, "datasize: %d\n", t.DataSize())
			fmt.Fprintf(os.Stdout, "own: %s\n", m.Flags)
			return nil
		},
	}
	cmd.Flags().StringVar(&typeStr, "type", "", "type string describing the buffer's layout")
	cmd.Flags().BoolVar(&readWrite, "rw", false, "map the file read-write")
	return cmd
}
