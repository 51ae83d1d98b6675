package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/arloliu/dyescan/encoding"
	"github.com/arloliu/dyescan/format"
	"github.com/arloliu/dyescan/generate"
	"github.com/arloliu/dyescan/grid"
	"github.com/arloliu/dyescan/persist"
	"github.com/arloliu/dyescan/pipeline"
	"github.com/arloliu/dyescan/section"
	"github.com/arloliu/dyescan/visualize"
)

const (
	defaultDataDir = "data"
	sqliteFile     = "artifacts.db"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	app := newApp(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(stdout io.Writer) *cli.App {
	app := cli.NewApp()

	app.Name = "dyescan"
	app.Usage = "Simulate, encode and analyse microscope and dye sensor images"
	app.Version = "1.0.0"
	app.Writer = stdout

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "data-dir",
			EnvVars: []string{"DYESCAN_DATA_DIR"},
			Value:   defaultDataDir,
			Usage:   "directory holding artifacts and images",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log stage events to stderr",
		},
	}

	storeFlag := &cli.StringFlag{
		Name:  "store",
		Value: "dir",
		Usage: "artifact store: dir or sqlite",
	}
	shapeFlags := []cli.Flag{
		&cli.IntFlag{Name: "height", Value: pipeline.DefaultShape.Height, Usage: "image height"},
		&cli.IntFlag{Name: "width", Value: pipeline.DefaultShape.Width, Usage: "image width"},
	}

	app.Commands = []*cli.Command{
		{
			Name:  "run",
			Usage: "Generate, encode, persist, decode and analyse one scan",
			Flags: append([]cli.Flag{
				&cli.Int64Flag{Name: "seed", Usage: "random seed (default: time based)"},
				&cli.Float64Flag{Name: "dye-ratio", Value: generate.DefaultDyeRatio, Usage: "dye probability outside the blob"},
				&cli.IntFlag{Name: "min-radius", Value: generate.DefaultMinRadius, Usage: "smallest blob radius"},
				&cli.IntFlag{Name: "max-radius", Value: generate.DefaultMaxRadius, Usage: "blob radius upper bound (exclusive)"},
				&cli.StringFlag{Name: "format", Value: "json", Usage: "artifact format: json or binary"},
				&cli.StringFlag{Name: "compression", Value: "zstd", Usage: "binary payload compression: none, zstd, s2 or lz4"},
				&cli.BoolFlag{Name: "images", Usage: "write decoded images as PNG under <data-dir>/images"},
				storeFlag,
			}, shapeFlags...),
			Action: runAction,
		},
		{
			Name:      "inspect",
			Usage:     "Describe a stored artifact",
			ArgsUsage: "ARTIFACT",
			Flags:     []cli.Flag{storeFlag},
			Action:    inspectAction,
		},
		{
			Name:      "decode",
			Usage:     "Decode a stored artifact into a PNG image",
			ArgsUsage: "ARTIFACT",
			Flags:     append([]cli.Flag{storeFlag}, shapeFlags...),
			Action:    decodeAction,
		},
	}

	return app
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
		logger.SetFlags(log.LstdFlags)
	}

	return logger
}

func openStore(c *cli.Context) (persist.Store, error) {
	dir := c.String("data-dir")

	switch kind := c.String("store"); kind {
	case "dir":
		return persist.NewDirStore(dir)
	case "sqlite":
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}

		return persist.NewSQLiteStore(filepath.Join(dir, sqliteFile))
	default:
		return nil, fmt.Errorf("unknown store %q", kind)
	}
}

func shapeOf(c *cli.Context) grid.Shape {
	return grid.NewShape(c.Int("height"), c.Int("width"))
}

func runAction(c *cli.Context) error {
	artifactFormat, err := format.ParseArtifactFormat(c.String("format"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	compression, err := format.ParseCompressionType(c.String("compression"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	store, err := openStore(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer store.Close()

	opts := []pipeline.Option{
		pipeline.WithShape(shapeOf(c)),
		pipeline.WithRadiusRange(generate.RadiusRange{Min: c.Int("min-radius"), Max: c.Int("max-radius")}),
		pipeline.WithDyeRatio(c.Float64("dye-ratio")),
		pipeline.WithFormat(artifactFormat),
		pipeline.WithCompression(compression),
		pipeline.WithLogger(newLogger(c)),
	}
	if c.IsSet("seed") {
		opts = append(opts, pipeline.WithSeed(c.Int64("seed")))
	}
	if c.Bool("images") {
		opts = append(opts, pipeline.WithSink(visualize.PNGSink{Dir: c.String("data-dir")}))
	}

	p, err := pipeline.New(store, opts...)
	if err != nil {
		return cli.Exit(err, 1)
	}

	res, err := p.Run(c.Context)
	if err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Fprintln(c.App.Writer, "Has cancer (Microscope Image):", res.Microscope)
	fmt.Fprintln(c.App.Writer, "Has cancer (Dye Sensor Image):", res.Dye)

	return nil
}

func loadArtifact(c *cli.Context) (string, []byte, error) {
	if c.NArg() < 1 {
		return "", nil, fmt.Errorf("%s: missing ARTIFACT argument", c.Command.Name)
	}
	name := c.Args().First()

	store, err := openStore(c)
	if err != nil {
		return "", nil, err
	}
	defer store.Close()

	data, err := store.Get(c.Context, name)
	if err != nil {
		return "", nil, err
	}

	return name, data, nil
}

func inspectAction(c *cli.Context) error {
	name, data, err := loadArtifact(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	kind, err := persist.Sniff(data)
	if err != nil {
		return cli.Exit(err, 1)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "artifact:    %s (%d bytes)\n", name, len(data))
	fmt.Fprintf(w, "format:      %s\n", kind.Format)
	fmt.Fprintf(w, "encoding:    %s\n", kind.Encoding)
	fmt.Fprintf(w, "items:       %d\n", kind.Items)

	if kind.Encoding == format.TypeRLE {
		stream, err := rleStream(data, kind)
		if err != nil {
			return cli.Exit(err, 1)
		}
		fmt.Fprintf(w, "cells:       %d\n", encoding.RunLengthSum(stream))
	}

	if kind.Format != format.FormatBinary {
		return nil
	}

	header, err := persist.InspectEnvelope(data)
	if err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Fprintf(w, "shape:       %s\n", header.Shape())
	fmt.Fprintf(w, "compression: %s\n", header.Flag.Compression())
	fmt.Fprintf(w, "byte order:  %s\n", byteOrder(header.Flag))
	fmt.Fprintf(w, "payload:     %d bytes (%d stored)\n", header.PayloadSize, header.CompressedSize)
	fmt.Fprintf(w, "checksum:    0x%016x\n", header.Checksum)

	return nil
}

func rleStream(data []byte, kind persist.Kind) ([]uint16, error) {
	if kind.Format != format.FormatBinary {
		return persist.UnmarshalRLE(data)
	}

	header, err := persist.InspectEnvelope(data)
	if err != nil {
		return nil, err
	}

	return persist.DecodeRLEEnvelope(data, header.Shape())
}

func byteOrder(flag section.ArtifactFlag) string {
	if flag.IsLittleEndian() {
		return "little-endian"
	}

	return "big-endian"
}

func decodeAction(c *cli.Context) error {
	name, data, err := loadArtifact(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	img, _, err := persist.DecodeImage(data, shapeOf(c))
	if err != nil {
		return cli.Exit(err, 1)
	}

	title := strings.TrimSuffix(name, filepath.Ext(name))
	sink := visualize.PNGSink{Dir: c.String("data-dir")}
	if err := sink.Show(img, title); err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Fprintf(c.App.Writer, "%s: %d of %d cells set, written to %s\n", name, img.Count(), img.Shape().Cells(), sink.Path(title))

	return nil
}
