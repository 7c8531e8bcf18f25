package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tirja/porygon/encoding"
)

// stdinArg is the file argument that selects standard input.
const stdinArg = "-"

// readInput reads the named file, or stdin when args is empty or "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == stdinArg {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return data, nil
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == stdinArg {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

// parsePoints decodes a JSON array of number arrays.
func parsePoints(data []byte) ([]encoding.Point, error) {
	var raw [][]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse points: expected a JSON array of number arrays: %w", err)
	}

	return toPoints(raw), nil
}

// parseTracks decodes a JSON object mapping track names to point arrays.
func parseTracks(data []byte) (map[string][]encoding.Point, error) {
	var raw map[string][][]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse tracks: expected a JSON object of point arrays: %w", err)
	}

	tracks := make(map[string][]encoding.Point, len(raw))
	for name, points := range raw {
		tracks[name] = toPoints(points)
	}

	return tracks, nil
}

func toPoints(raw [][]float64) []encoding.Point {
	points := make([]encoding.Point, len(raw))
	for i, p := range raw {
		points[i] = encoding.Point(p)
	}

	return points
}

// marshalJSON encodes v as indented JSON followed by a newline.
func marshalJSON(v any, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if indent {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
