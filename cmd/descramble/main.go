package main

import (
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/bodgit/descramble"
	"github.com/bodgit/descramble/ordering"
	"github.com/urfave/cli/v2"
)

const defaultDB = "descramble.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func tileSize(c *cli.Context) image.Point {
	return image.Pt(c.Int("tile-width"), c.Int("tile-height"))
}

func gridSize(file string, tile image.Point) (int, int, int, error) {
	if tile.X <= 0 || tile.Y <= 0 {
		return 0, 0, 0, errors.New("tile dimensions must be positive")
	}

	f, err := os.Open(file)
	if err != nil {
		return 0, 0, 0, err
	}
	defer f.Close()

	config, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, 0, err
	}

	rows, columns := config.Height/tile.Y, config.Width/tile.X

	return rows, columns, rows * columns, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "descramble"
	app.Usage = "Tile image descrambling utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"DESCRAMBLE_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to recipe database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	sizeFlags := []cli.Flag{
		&cli.IntFlag{
			Name:     "tile-width",
			Usage:    "tile width in pixels",
			Required: true,
		},
		&cli.IntFlag{
			Name:     "tile-height",
			Usage:    "tile height in pixels",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    "path to output image",
			Required: true,
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "apply",
			Usage:       "Descramble a single image with an order file",
			Description: "",
			ArgsUsage:   "IMAGE",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:     "ordering",
					Usage:    "path to order file",
					Required: true,
				},
			}, sizeFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				o, err := ordering.ParseFile(c.String("ordering"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := descramble.Rearrange(c.Args().First(), tileSize(c), o, c.String("output")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scramble",
			Usage:       "Scramble a single image, writing an order file to reverse it",
			Description: "",
			ArgsUsage:   "IMAGE",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:     "ordering-out",
					Usage:    "path to write the order file to",
					Required: true,
				},
				&cli.Int64Flag{
					Name:  "seed",
					Usage: "seed for the generated permutation",
					Value: time.Now().UnixNano(),
				},
				&cli.BoolFlag{
					Name:  "hilbert",
					Usage: "scramble along a Hilbert curve instead of randomly",
				},
			}, sizeFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				rows, columns, tiles, err := gridSize(c.Args().First(), tileSize(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				var o []int
				if c.Bool("hilbert") {
					if o, err = ordering.Hilbert(rows, columns); err != nil {
						return cli.NewExitError(err, 1)
					}
				} else {
					o = ordering.Random(tiles, c.Int64("seed"))
				}

				if err := descramble.Scramble(c.Args().First(), tileSize(c), o, c.String("output")); err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := ordering.WriteFile(c.String("ordering-out"), o); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "import",
			Usage:       "Import a recipe manifest into the database",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				d, err := descramble.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer d.Close()

				if err := d.ImportXML(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and descramble any image with a recipe",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				d, err := descramble.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer d.Close()

				if err := d.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
