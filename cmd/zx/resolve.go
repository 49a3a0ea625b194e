package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/zx/internal/errors"
	"github.com/vango-dev/zx/pkg/sourcemap"
)

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve file.go:line:col",
		Short: "Map a generated position back to its .zx source",
		Long: `Look up a position in a generated .go file in its source map
(file.go.map) and print the matching .zx position.

Examples:
  zx resolve views/home.go:14:9`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, line, col, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(file + ".map")
			if err != nil {
				return errors.New("E141").
					WithSuggestion("Build with --sourcemaps to generate " + file + ".map").
					Wrap(err)
			}
			pos, err := sourcemap.Resolve(data, line, col)
			if err != nil {
				return errors.New("E141").Wrap(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), pos)
			return nil
		},
	}
	return cmd
}

// parsePosition splits "file:line:col" or "file:line". The column defaults
// to 1.
func parsePosition(s string) (file string, line, col int, err error) {
	parts := strings.Split(s, ":")
	col = 1
	switch {
	case len(parts) >= 3:
		if col, err = strconv.Atoi(parts[len(parts)-1]); err != nil {
			break
		}
		if line, err = strconv.Atoi(parts[len(parts)-2]); err != nil {
			// file:line where the file name contains a colon
			line, err = col, nil
			col = 1
			file = strings.Join(parts[:len(parts)-1], ":")
			break
		}
		file = strings.Join(parts[:len(parts)-2], ":")
	case len(parts) == 2:
		line, err = strconv.Atoi(parts[1])
		file = parts[0]
	default:
		err = fmt.Errorf("missing line number")
	}
	if err == nil && (file == "" || line < 1 || col < 1) {
		err = fmt.Errorf("invalid position")
	}
	if err != nil {
		return "", 0, 0, errors.New("E141").
			WithDetail(fmt.Sprintf("%q is not a file.go:line:col position", s)).
			Wrap(err)
	}
	return file, line, col, nil
}
