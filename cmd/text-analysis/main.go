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
	"github.com/pranav-c01/ICT-Training/internal/textanalysis"
	"github.com/rs/zerolog/log"
)

const usage = `
	Usage: %s [-dir folder | -file path | -i]

	Detects the language, sentiment, key phrases, entities and linked entities
	of each text. By default every file of the reviews folder is analyzed.

	Flags:
`

func main() {
	dir := flag.String("dir", "reviews", "folder whose files are analyzed one by one")
	file := flag.String("file", "", "analyze a single text file")
	interactive := flag.Bool("i", false, "type or paste the text to analyze")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), cli.Usage(usage, os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if _, err := cli.SetupLogging(""); err != nil {
		cli.Fatal("%v", err)
	}
	if *interactive && *file != "" {
		cli.Fatal("-i and -file cannot be used together")
	}

	config.LoadEnvFile()
	svc, err := config.LoadService()
	if err != nil {
		cli.Fatal("%v", err)
	}

	client := azure.NewTextAnalyticsClient(azure.ClientOpts{Endpoint: svc.Endpoint, Key: svc.Key})
	analyzer := textanalysis.NewAzureAnalyzer(client)

	var src input.Source
	switch {
	case *interactive:
		src, err = input.PromptText()
		if errors.Is(err, input.ErrAborted) {
			return
		}
		if err != nil {
			cli.Fatal("failed to read text: %v", err)
		}
	case *file != "":
		src = input.FromFile(*file)
	default:
		src = input.FromFolder(*dir)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if failed := run(ctx, analyzer, src, render.NewConsole(os.Stdout)); failed > 0 {
		cancel()
		cli.Fatal("%d document(s) could not be read", failed)
	}
}

// run analyzes every document of src and returns how many could not be
// read. Analysis failures are printed per capability and do not count.
func run(ctx context.Context, analyzer textanalysis.Analyzer, src input.Source, out *render.Console) int {
	failed := 0
	for doc, err := range src.Documents() {
		if ctx.Err() != nil {
			break
		}
		if err != nil {
			log.Error().Err(err).Str("document", doc.Label).Msg("failed to read document")
			failed++
			continue
		}

		out.Document(doc.Label, doc.Text())
		res, err := textanalysis.Analyze(ctx, analyzer, doc.Text())
		if errors.Is(err, textanalysis.ErrEmptyText) {
			out.Warning(render.MsgEmptyText)
			continue
		}
		if err != nil {
			out.Error(err)
			continue
		}
		for _, f := range res.Failures {
			log.Debug().Err(f.Err).Str("document", doc.Label).Str("capability", string(f.Capability)).Msg("capability failed")
		}
		out.Text(res)
	}
	return failed
}
