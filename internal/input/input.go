// Package input resolves where the text or image of a run comes from.
package input

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Kind tells where a Source reads from.
type Kind int

const (
	// Typed is text typed or pasted by the user.
	Typed Kind = iota
	// File is a single local file.
	File
	// Folder is every regular file of a local directory.
	Folder
	// Upload is data received from the web form.
	Upload
)

func (k Kind) String() string {
	switch k {
	case Typed:
		return "typed"
	case File:
		return "file"
	case Folder:
		return "folder"
	case Upload:
		return "upload"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Source is a resolved input. Only the fields of its Kind are set.
type Source struct {
	Kind  Kind
	Label string
	Text  string
	Path  string
	Dir   string
	Data  []byte
}

// Document is one unit of input to analyze.
type Document struct {
	Label string
	Data  []byte
}

// Text returns the document as a string.
func (d Document) Text() string {
	return string(d.Data)
}

// IsBlank reports whether the document is empty or whitespace only.
func (d Document) IsBlank() bool {
	return strings.TrimSpace(string(d.Data)) == ""
}

func FromText(text string) Source {
	return Source{Kind: Typed, Label: "input", Text: text}
}

func FromFile(path string) Source {
	return Source{Kind: File, Label: filepath.Base(path), Path: path}
}

func FromFolder(dir string) Source {
	return Source{Kind: Folder, Label: dir, Dir: dir}
}

func FromUpload(name string, data []byte) Source {
	return Source{Kind: Upload, Label: name, Data: data}
}

// Documents yields the documents of the source. For a Folder every regular
// file is read right before it is yielded, in name order; a file that cannot
// be read is yielded with its error and iteration continues.
func (s Source) Documents() iter.Seq2[Document, error] {
	return func(yield func(Document, error) bool) {
		switch s.Kind {
		case Typed:
			yield(Document{Label: s.Label, Data: []byte(s.Text)}, nil)
		case Upload:
			yield(Document{Label: s.Label, Data: s.Data}, nil)
		case File:
			data, err := os.ReadFile(s.Path)
			yield(Document{Label: s.Label, Data: data}, err)
		case Folder:
			names, err := listFiles(s.Dir)
			if err != nil {
				yield(Document{Label: s.Dir}, err)
				return
			}
			for _, name := range names {
				data, err := os.ReadFile(filepath.Join(s.Dir, name))
				if !yield(Document{Label: name, Data: data}, err) {
					return
				}
			}
		default:
			yield(Document{}, fmt.Errorf("unknown input kind %s", s.Kind))
		}
	}
}

// listFiles returns the names of the regular files in dir, sorted.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}
