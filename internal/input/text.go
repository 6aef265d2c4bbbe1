package input

import (
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// MaxTextSize is the largest text file accepted from an upload.
const MaxTextSize = 1 << 20

var (
	ErrTextTooLarge = fmt.Errorf("text file is larger than %d MB", MaxTextSize>>20)
	ErrNotText      = errors.New("file is not plain text")
)

// ReadText reads an uploaded text file of at most limit bytes. Empty files
// are accepted; the caller decides what to do with blank input.
func ReadText(name string, r io.Reader, limit int64) (Source, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return Source{}, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if int64(len(data)) > limit {
		return Source{}, ErrTextTooLarge
	}
	if len(data) > 0 {
		if mtype := mimetype.Detect(data); !isText(mtype) {
			return Source{}, fmt.Errorf("%w: %s", ErrNotText, mtype.String())
		}
	}
	return FromUpload(name, data), nil
}

// isText reports whether m is text/plain or one of its subtypes, such as
// csv or html, which a review that happens to contain commas or tags is
// detected as.
func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
