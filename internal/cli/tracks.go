package cli

import (
	"context"
	"fmt"
	"maps"
	"runtime"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tirja/porygon/blob"
	"github.com/tirja/porygon/encoding"
	"github.com/tirja/porygon/format"
)

// newPackCmd creates the pack command: JSON object of tracks in, track blob out.
func newPackCmd(root *rootOpts) *cobra.Command {
	var output, compression string

	cmd := &cobra.Command{
		Use:   "pack [file]",
		Short: "Pack named tracks into a track blob",
		Long: `Pack reads a JSON object mapping track names to point arrays, such as
{"commute": [[38.5,-120.2],[40.7,-120.95]]}, and writes a track blob. Tracks are
stored in name order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			p := newProgress(logger)

			cfg := root.cfg
			if cmd.Flags().Changed("compression") {
				if _, err := format.ParseCompressionType(compression); err != nil {
					return err
				}
				cfg.Compression = compression
			}
			if err := cfg.validateBlob(); err != nil {
				return err
			}

			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			tracks, err := parseTracks(data)
			if err != nil {
				return err
			}

			encoder, err := blob.NewTrackEncoder(cfg.Items, cfg.encoderOptions()...)
			if err != nil {
				return err
			}

			for _, name := range slices.Sorted(maps.Keys(tracks)) {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				if err := encoder.AddTrack(name, tracks[name]); err != nil {
					return err
				}
				logger.Debug("added track", "name", name, "points", len(tracks[name]))
			}

			packed, err := encoder.Finish()
			if err != nil {
				return err
			}

			stats := encoder.Stats()
			p.done("packed",
				"tracks", len(tracks),
				"bytes", len(packed),
				"compression", stats.Algorithm,
				"ratio", fmt.Sprintf("%.2f", stats.CompressionRatio()),
			)

			return writeOutput(cmd, output, packed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&compression, "compression", defaultCompression, "payload compression: none, zstd, s2, lz4, snappy")

	return cmd
}

// newUnpackCmd creates the unpack command: track blob in, JSON object of tracks out.
func newUnpackCmd(_ *rootOpts) *cobra.Command {
	var encoded, compact bool

	cmd := &cobra.Command{
		Use:   "unpack [file]",
		Short: "Unpack a track blob into a JSON object of tracks",
		Long: `Unpack prints every track of a track blob as a JSON object. Axis count and
precision come from the blob header, so --items and --precision are ignored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			p := newProgress(logger)

			tracks, err := readTrackBlob(cmd, args)
			if err != nil {
				return err
			}

			var out []byte
			if encoded {
				texts := make(map[string]string, tracks.Len())
				for name, text := range tracks.All() {
					texts[name] = text
				}
				out, err = marshalJSON(texts, !compact)
			} else {
				var points map[string][]encoding.Point
				if points, err = decodeTracks(cmd.Context(), tracks); err != nil {
					return err
				}
				out, err = marshalJSON(points, !compact)
			}
			if err != nil {
				return err
			}

			p.done("unpacked", "tracks", tracks.Len(), "items", tracks.Items(), "precision", tracks.Precision())

			return writeOutput(cmd, "", out)
		},
	}

	cmd.Flags().BoolVar(&encoded, "encoded", false, "print polyline strings instead of points")
	cmd.Flags().BoolVar(&compact, "compact", false, "print JSON on a single line")

	return cmd
}

// newInspectCmd creates the inspect command, which summarizes a track blob.
func newInspectCmd(_ *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the header and tracks of a track blob",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracks, err := readTrackBlob(cmd, args)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "items:\t%d\n", tracks.Items())
			fmt.Fprintf(w, "precision:\t%d\n", tracks.Precision())
			fmt.Fprintf(w, "compression:\t%s\n", tracks.Compression())
			fmt.Fprintf(w, "tracks:\t%d\n\n", tracks.Len())

			fmt.Fprintln(w, "NAME\tID\tPOINTS\tCHARS")
			for name, text := range tracks.All() {
				id, _ := tracks.TrackID(name)
				count, _ := tracks.PointCount(name)
				fmt.Fprintf(w, "%s\t%016x\t%d\t%d\n", name, id, count, len(text))
			}

			return w.Flush()
		},
	}
}

// decodeTracks decodes every track of tracks in parallel.
func decodeTracks(ctx context.Context, tracks blob.TrackBlob) (map[string][]encoding.Point, error) {
	names := tracks.Names()
	decoded := make([][]encoding.Point, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			points, err := tracks.Points(name)
			if err != nil {
				return fmt.Errorf("track %q: %w", name, err)
			}
			decoded[i] = points

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(map[string][]encoding.Point, len(names))
	for i, name := range names {
		result[name] = decoded[i]
	}

	return result, nil
}

func readTrackBlob(cmd *cobra.Command, args []string) (blob.TrackBlob, error) {
	data, err := readInput(cmd, args)
	if err != nil {
		return blob.TrackBlob{}, err
	}

	tracks, err := blob.DecodeTrackBlob(data)
	if err != nil {
		return blob.TrackBlob{}, fmt.Errorf("decode track blob: %w", err)
	}

	loggerFromContext(cmd.Context()).Debug("track blob decoded", "bytes", len(data), "tracks", tracks.Len())

	return tracks, nil
}
