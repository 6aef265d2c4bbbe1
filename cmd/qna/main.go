package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pranav-c01/ICT-Training/config"
	"github.com/pranav-c01/ICT-Training/internal/azure"
	"github.com/pranav-c01/ICT-Training/internal/cli"
	"github.com/pranav-c01/ICT-Training/internal/input"
	"github.com/pranav-c01/ICT-Training/internal/qna"
	"github.com/pranav-c01/ICT-Training/internal/render"
)

const usage = `
	Usage: %s [flags]

	Asks questions to the knowledge base configured with QA_PROJECT_NAME and
	QA_DEPLOYMENT_NAME. Type "quit" to stop.

	Flags:
`

func main() {
	top := flag.Int("top", 0, "number of answers to request (0 = service default)")
	threshold := flag.Float64("threshold", 0, "minimum answer confidence between 0 and 1")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), cli.Usage(usage, os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if _, err := cli.SetupLogging(""); err != nil {
		cli.Fatal("%v", err)
	}

	config.LoadEnvFile()
	cfg, err := config.LoadQuestionAnswering()
	if err != nil {
		cli.Fatal("%v", err)
	}

	client := azure.NewQuestionAnsweringClient(
		azure.ClientOpts{Endpoint: cfg.Endpoint, Key: cfg.Key},
		cfg.ProjectName,
		cfg.DeploymentName,
	)
	answerer := qna.NewAzureAnswerer(client, azure.AnswersOptions{Top: *top, ConfidenceThreshold: *threshold})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	next := lineReader(os.Stdin, os.Stdout)
	if cli.IsInteractiveTerminal() {
		next = input.PromptQuestion
	}

	loop(ctx, answerer, next, render.NewConsole(os.Stdout))
}

// loop asks questions until "quit", the end of input or cancellation.
func loop(ctx context.Context, answerer qna.Answerer, next func() (string, error), out *render.Console) {
	for ctx.Err() == nil {
		question, err := next()
		if errors.Is(err, io.EOF) || errors.Is(err, input.ErrAborted) {
			return
		}
		if err != nil {
			out.Error(err)
			return
		}
		if qna.IsQuit(question) {
			return
		}

		resp, err := qna.Ask(ctx, answerer, question)
		switch {
		case errors.Is(err, qna.ErrEmptyQuestion):
			out.Warning(render.MsgEmptyQuestion)
		case err != nil:
			out.Error(err)
		default:
			out.Answer(resp)
		}
	}
}

// lineReader reads one question per line from r, prompting on w.
func lineReader(r io.Reader, w io.Writer) func() (string, error) {
	scanner := bufio.NewScanner(r)
	return func() (string, error) {
		fmt.Fprint(w, "\nQuestion: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return scanner.Text(), nil
	}
}
