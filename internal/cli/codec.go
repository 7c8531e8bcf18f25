package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tirja/porygon/encoding"
)

// newEncodeCmd creates the encode command: JSON points in, polyline string out.
func newEncodeCmd(root *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a JSON array of points into a polyline string",
		Long: `Encode reads a JSON array of points such as [[38.5,-120.2],[40.7,-120.95]]
from a file or stdin and prints the polyline string.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			p := newProgress(logger)

			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			points, err := parsePoints(data)
			if err != nil {
				return err
			}

			text, err := encoding.Encode(root.cfg.Items, points, root.cfg.Precision)
			if err != nil {
				return err
			}

			p.done("encoded", "points", len(points), "chars", len(text))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)

			return err
		},
	}
}

// newDecodeCmd creates the decode command: polyline string in, JSON points out.
func newDecodeCmd(root *rootOpts) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "decode [text]",
		Short: "Decode a polyline string into a JSON array of points",
		Long: `Decode prints the points of a polyline string as JSON. The string is taken
from the argument or, when absent, from stdin. Surrounding whitespace is ignored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			p := newProgress(logger)

			var text string
			if len(args) == 1 {
				text = args[0]
			} else {
				data, err := readInput(cmd, nil)
				if err != nil {
					return err
				}
				text = string(data)
			}
			text = strings.TrimSpace(text)

			points, err := encoding.Decode(root.cfg.Items, text, root.cfg.Precision)
			if err != nil {
				return err
			}

			p.done("decoded", "chars", len(text), "points", len(points))

			out, err := marshalJSON(points, !compact)
			if err != nil {
				return err
			}

			return writeOutput(cmd, "", out)
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "print JSON on a single line")

	return cmd
}
