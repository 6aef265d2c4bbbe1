package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pranav-c01/ICT-Training/config"
	"github.com/pranav-c01/ICT-Training/internal/azure"
	"github.com/pranav-c01/ICT-Training/internal/cli"
	"github.com/pranav-c01/ICT-Training/internal/qna"
	"github.com/pranav-c01/ICT-Training/internal/textanalysis"
	"github.com/pranav-c01/ICT-Training/internal/vision"
	"github.com/pranav-c01/ICT-Training/internal/web"
	"github.com/rs/zerolog/log"
)

const logFileName = "ai-lab.log"

const usage = `
	Usage: %s [flags]

	Serves the text analysis, question answering and image analysis apps
	on http://localhost%s (AI_LAB_ADDR).

	Flags:
`

func main() {
	appsFlag := flag.String("apps", "text,qna,image", "comma separated apps to serve: text, qna, image")
	setup := flag.Bool("setup", false, "run the configuration wizard before starting")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), cli.Usage(usage, os.Args[0], config.DefaultAddr))
		flag.PrintDefaults()
	}
	flag.Parse()

	logFile, err := cli.SetupLogging(logFileName)
	if err != nil {
		cli.Fatal("%v", err)
	}
	defer logFile.Close()

	enabled, err := parseApps(*appsFlag)
	if err != nil {
		cli.Fatal("%v", err)
	}

	// Try to load existing .env files
	config.LoadEnvFile()

	if *setup {
		if !cli.IsInteractiveTerminal() {
			cli.Fatal("-setup needs an interactive terminal")
		}
		if !runSetupWizard(enabled.qna) {
			cli.WaitOnWindows()
			os.Exit(1)
		}
	}

	cfg, err := loadConfig(enabled)
	if err != nil {
		if cli.IsInteractiveTerminal() {
			cli.Fatal("%v (run with -setup to create %s)", err, config.EnvFileName)
		}
		cli.Fatal("%v", err)
	}

	apps := buildApps(enabled, cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := web.New(apps).Run(ctx, config.Addr()); err != nil {
		log.Error().Err(err).Msg("shutdown with error")
	} else {
		log.Info().Msg("shutdown complete")
	}
}

type enabledApps struct {
	text, qna, image bool
}

func parseApps(s string) (enabledApps, error) {
	var e enabledApps
	for _, name := range strings.Split(s, ",") {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "text":
			e.text = true
		case "qna":
			e.qna = true
		case "image":
			e.image = true
		case "":
		default:
			return e, fmt.Errorf("unknown app %q (use text, qna, image)", strings.TrimSpace(name))
		}
	}
	if !e.text && !e.qna && !e.image {
		return e, fmt.Errorf("no apps selected")
	}
	return e, nil
}

// loadConfig reads the settings the enabled apps need. The project and
// deployment names are only required when question answering is enabled.
func loadConfig(e enabledApps) (config.QuestionAnswering, error) {
	if e.qna {
		return config.LoadQuestionAnswering()
	}
	svc, err := config.LoadService()
	return config.QuestionAnswering{Service: svc}, err
}

// buildApps creates one client per enabled app. No request is made.
func buildApps(e enabledApps, cfg config.QuestionAnswering) web.Apps {
	opts := azure.ClientOpts{Endpoint: cfg.Endpoint, Key: cfg.Key}

	var apps web.Apps
	if e.text {
		apps.Text = textanalysis.NewAzureAnalyzer(azure.NewTextAnalyticsClient(opts))
		log.Info().Msg("text analysis enabled")
	}
	if e.qna {
		client := azure.NewQuestionAnsweringClient(opts, cfg.ProjectName, cfg.DeploymentName)
		apps.QnA = qna.NewAzureAnswerer(client, azure.AnswersOptions{})
		log.Info().Msg("question answering enabled")
	}
	if e.image {
		apps.Image = vision.NewAzureAnalyzer(azure.NewImageAnalysisClient(opts), azure.ImageAnalysisOptions{})
		log.Info().Msg("image analysis enabled")
	}
	return apps
}
