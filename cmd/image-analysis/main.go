package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pranav-c01/ICT-Training/config"
	"github.com/pranav-c01/ICT-Training/internal/azure"
	"github.com/pranav-c01/ICT-Training/internal/cli"
	"github.com/pranav-c01/ICT-Training/internal/input"
	"github.com/pranav-c01/ICT-Training/internal/render"
	"github.com/pranav-c01/ICT-Training/internal/vision"
	"github.com/rs/zerolog/log"
)

const defaultImage = "images/street.jpg"

const usage = `
	Usage: %s [flags] [image]

	Captions, tags and detects objects and people in an image. Detected
	objects and people are drawn into %s and %s.
	Without an image argument a file picker is shown on a terminal,
	otherwise %s is used.

	Flags:
`

func main() {
	outDir := flag.String("out", ".", "folder for the annotated images")
	language := flag.String("lang", "", "caption and tag language (service default when empty)")
	genderNeutral := flag.Bool("gender-neutral", false, "use gender neutral captions")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), cli.Usage(usage, os.Args[0], render.ObjectsFile, render.PeopleFile, defaultImage))
		flag.PrintDefaults()
	}
	flag.Parse()

	if _, err := cli.SetupLogging(""); err != nil {
		cli.Fatal("%v", err)
	}

	config.LoadEnvFile()
	svc, err := config.LoadService()
	if err != nil {
		cli.Fatal("%v", err)
	}

	path, err := imagePath(flag.Arg(0))
	if errors.Is(err, input.ErrAborted) {
		return
	}
	if err != nil {
		cli.Fatal("failed to choose image: %v", err)
	}

	img, err := input.LoadImage(path)
	if err != nil {
		cli.Fatal("failed to load image: %v", err)
	}

	client := azure.NewImageAnalysisClient(azure.ClientOpts{Endpoint: svc.Endpoint, Key: svc.Key})
	analyzer := vision.NewAzureAnalyzer(client, azure.ImageAnalysisOptions{
		Language:             *language,
		GenderNeutralCaption: *genderNeutral,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, analyzer, img, *outDir, render.NewConsole(os.Stdout)); err != nil {
		cancel()
		cli.Fatal("%v", err)
	}
}

func imagePath(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if cli.IsInteractiveTerminal() {
		return input.PickImage(".")
	}
	return defaultImage, nil
}

func run(ctx context.Context, analyzer vision.Analyzer, img input.Image, outDir string, out *render.Console) error {
	log.Info().Str("image", img.Name).Str("mime", img.MIME).Int("size", len(img.Data)).Msg("analyzing image")

	res, err := vision.Analyze(ctx, analyzer, img.Data)
	if err != nil {
		return err
	}
	return out.Image(res, img.Data, outDir)
}
