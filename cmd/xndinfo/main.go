// Command xndinfo inspects and manipulates typed-memory buffers from the
// command line: printing a buffer's type summary, reshaping an ndarray,
// splitting one into balanced parts, subscribing into it with an
// index/slice/field path, and transposing its axes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "xndinfo",
		Short: "Inspect and manipulate typed-memory buffers",
	}
	root.AddCommand(newDumpCmd())
	root.AddCommand(newReshapeCmd())
	root.AddCommand(newSplitCmd())
	root.AddCommand(newSubscribeCmd())
	root.AddCommand(newTransposeCmd())
	return root
}
