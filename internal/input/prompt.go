package input

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted")

func run(field huh.Field) error {
	err := huh.NewForm(huh.NewGroup(field)).WithTheme(huh.ThemeBase16()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// PromptText asks for a text to analyze.
func PromptText() (Source, error) {
	var text string
	err := run(huh.NewText().
		Title("Text to analyze").
		Description("Type or paste the text. Alt+Enter for a new line.").
		Value(&text))
	if err != nil {
		return Source{}, err
	}
	return FromText(text), nil
}

// PromptQuestion asks for one question. Type "quit" to stop.
func PromptQuestion() (string, error) {
	var question string
	err := run(huh.NewInput().
		Title("Question").
		Placeholder(`Enter a question ("quit" to exit)`).
		Value(&question))
	return question, err
}

// PickImage lets the user choose an image file below dir.
func PickImage(dir string) (string, error) {
	var path string
	err := run(huh.NewFilePicker().
		Title("Choose an image").
		CurrentDirectory(dir).
		AllowedTypes([]string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".tif", ".tiff"}).
		Value(&path))
	return path, err
}
