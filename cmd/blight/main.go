package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	blight "github.com/TraceMyers/Blight"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "blight"
	app.Usage = "decode BMP and TGA raster images"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "probe",
			Usage:       "Infer a file's raster format without decoding it",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				dir, name := filepath.Split(c.Args().First())
				format, err := blight.InferFormat(dir, name, true)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Println(format)
				return nil
			},
		},
		{
			Name:        "info",
			Usage:       "Decode a file and print its dimensions and pixel tag",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				dir, name := filepath.Split(c.Args().First())
				opts := blight.DefaultOptions()
				opts.LocalPath = true
				if c.Bool("verbose") {
					opts.Logger = log.New(os.Stderr, "", 0)
				}

				img, err := blight.Load(dir, name, blight.Infer, opts)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Printf("%dx%d %s\n", img.Width, img.Height, img.Pixels.Tag())
				return nil
			},
		},
		{
			Name:        "convert",
			Usage:       "Decode FILEs concurrently, reporting the first failure",
			Description: "",
			ArgsUsage:   "FILE...",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := log.New(ioutil.Discard, "", 0)
				opts := blight.DefaultOptions()
				opts.LocalPath = true
				if c.Bool("verbose") {
					logger.SetOutput(os.Stderr)
					opts.Logger = log.New(os.Stderr, "", 0)
				}

				if err := runConvert(c.Args().Slice(), opts, logger); err != nil {
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
