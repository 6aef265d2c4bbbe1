package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pranav-c01/ICT-Training/internal/input"
	"github.com/pranav-c01/ICT-Training/internal/render"
	"github.com/pranav-c01/ICT-Training/internal/textanalysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_BatchContinuesAfterFailures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "review1.txt"), []byte("Great hotel."), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "review2.txt"), []byte("   "), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "review3.txt"), []byte("Terrible staff."), 0644))

	var texts []string
	m := &textanalysis.MockAnalyzer{
		AnalyzeSentimentFunc: func(ctx context.Context, text string) (textanalysis.Sentiment, error) {
			texts = append(texts, text)
			if strings.HasPrefix(text, "Great") {
				return textanalysis.Sentiment{}, errors.New("Service Unavailable (status: 503)")
			}
			return textanalysis.Sentiment{Label: "negative"}, nil
		},
	}
	var buf bytes.Buffer

	failed := run(context.Background(), m, input.FromFolder(dir), render.NewConsole(&buf))

	assert.Equal(t, 0, failed)
	assert.Equal(t, []string{"Great hotel.", "Terrible staff."}, texts)
	assert.Equal(t, 10, m.CallCount())
	out := buf.String()
	assert.Contains(t, out, "Service Unavailable (status: 503)")
	assert.Contains(t, out, "Sentiment: negative\n")
	assert.Contains(t, out, render.MsgEmptyText)
	assert.Less(t, strings.Index(out, "review1.txt"), strings.Index(out, "review3.txt"))
}

func TestRun_CancelledContextStops(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("text"), 0644))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := &textanalysis.MockAnalyzer{}

	run(ctx, m, input.FromFolder(dir), render.NewConsole(&bytes.Buffer{}))

	assert.Equal(t, 0, m.CallCount())
}

func TestRun_MissingFile(t *testing.T) {
	m := &textanalysis.MockAnalyzer{}

	failed := run(context.Background(), m, input.FromFile(filepath.Join(t.TempDir(), "missing.txt")), render.NewConsole(&bytes.Buffer{}))

	assert.Equal(t, 1, failed)
	assert.Equal(t, 0, m.CallCount())
}
