package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ndview/xnd/ndt"
	"github.com/ndview/xnd/xnd"
)

func newSubscribeCmd() *cobra.Command {
	var typeStr, path string

	cmd := &cobra.Command{
		Use:   "subscribe <file>",
		Short: "Apply a dotted index/slice/field path and report the resulting type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := ndt.Parse(typeStr)
			if err != nil {
				return err
			}
			keys, err := parsePath(path)
			if err != nil {
				return err
			}

			m, err := xnd.FromFile(args[0], t, nil)
			if err != nil {
				return err
			}
			defer m.Close()

			v, err := xnd.Subscribe(&m.View, keys...)
			if err != nil {
				return err
			}
			fmt.Printf("tag: %s\n", v.Type.Tag)
			fmt.Printf("datasize: %d\n", v.Type.DataSize())
			return nil
		},
	}
	cmd.Flags().StringVar(&typeStr, "type", "", "type string describing the buffer's layout")
	cmd.Flags().StringVar(&path, "path", "", "dotted path, e.g. 2.x.1:5:2")
	return cmd
}

// parsePath turns a dotted path like "2.x.1:5:2" into xnd.Key values:
// a bare integer is an index, a bare name is a field, and "a:b:c" is a
// slice (any of a/b/c may be empty, meaning "unspecified").
func parsePath(path string) ([]xnd.Key, error) {
	if path == "" {
		return nil, nil
	}
	var keys []xnd.Key
	for _, tok := range strings.Split(path, ".") {
		if strings.Contains(tok, ":") {
			s, err := parseSliceToken(tok)
			if err != nil {
				return nil, err
			}
			keys = append(keys, xnd.SliceKey(s))
			continue
		}
		if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
			keys = append(keys, xnd.IndexKey(n))
			continue
		}
		keys = append(keys, xnd.FieldKey(tok))
	}
	return keys, nil
}

func parseSliceToken(tok string) (ndt.Slice, error) {
	parts := strings.Split(tok, ":")
	var s ndt.Slice
	s.Step = 1
	if len(parts) > 0 && parts[0] != "" {
		n, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return s, err
		}
		s.Start, s.HasStart = n, true
	}
	if len(parts) > 1 && parts[1] != "" {
		n, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return s, err
		}
		s.Stop, s.HasStop = n, true
	}
	if len(parts) > 2 && parts[2] != "" {
		n, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return s, err
		}
		s.Step = n
	}
	return s, nil
}
