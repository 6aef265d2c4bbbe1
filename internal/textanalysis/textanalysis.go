package textanalysis

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyText is returned when there is nothing to analyze.
var ErrEmptyText = errors.New("text is empty")

// Capability is one kind of text analysis.
type Capability string

const (
	CapabilityLanguage       Capability = "language"
	CapabilitySentiment      Capability = "sentiment"
	CapabilityKeyPhrases     Capability = "key_phrases"
	CapabilityEntities       Capability = "entities"
	CapabilityLinkedEntities Capability = "linked_entities"
)

// AllCapabilities lists every capability in the order they are invoked.
var AllCapabilities = []Capability{
	CapabilityLanguage,
	CapabilitySentiment,
	CapabilityKeyPhrases,
	CapabilityEntities,
	CapabilityLinkedEntities,
}

// Language is the primary language of a text.
type Language struct {
	Name       string
	ISO6391    string
	Confidence float64
}

// Scores is the three-way sentiment confidence distribution as returned by
// the service.
type Scores struct {
	Positive float64
	Neutral  float64
	Negative float64
}

// SentenceSentiment is the sentiment of one sentence.
type SentenceSentiment struct {
	Text   string
	Label  string
	Scores Scores
}

// Sentiment is the overall sentiment label with its scores.
type Sentiment struct {
	Label     string
	Scores    Scores
	Sentences []SentenceSentiment
}

// Entity is a recognized named entity.
type Entity struct {
	Text        string
	Category    string
	Subcategory string
	Confidence  float64
	Offset      int
	Length      int
}

// Match is one occurrence of a linked entity.
type Match struct {
	Text       string
	Confidence float64
	Offset     int
	Length     int
}

// LinkedEntity is an entity resolved to a knowledge base record.
type LinkedEntity struct {
	Name         string
	DataSource   string
	DataSourceID string
	URL          string
	Language     string
	Matches      []Match
}

// Confidence returns the best confidence among the entity's matches.
func (e LinkedEntity) Confidence() float64 {
	var best float64
	for _, m := range e.Matches {
		if m.Confidence > best {
			best = m.Confidence
		}
	}
	return best
}

// Analyzer performs each capability with one remote call.
type Analyzer interface {
	DetectLanguage(ctx context.Context, text string) (Language, error)
	AnalyzeSentiment(ctx context.Context, text string) (Sentiment, error)
	ExtractKeyPhrases(ctx context.Context, text string) ([]string, error)
	RecognizeEntities(ctx context.Context, text string) ([]Entity, error)
	RecognizeLinkedEntities(ctx context.Context, text string) ([]LinkedEntity, error)
}

// Failure records a capability whose call failed.
type Failure struct {
	Capability Capability
	Err        error
}

// Result is the outcome of analyzing one text. A nil pointer or empty slice
// means the sub-result was not produced: either not requested, failed (see
// Failures), or nothing was found.
type Result struct {
	Requested      []Capability
	Language       *Language
	Sentiment      *Sentiment
	KeyPhrases     []string
	Entities       []Entity
	LinkedEntities []LinkedEntity
	Failures       []Failure
}

// Has reports whether c was requested and did not fail.
func (r *Result) Has(c Capability) bool {
	if r.Err(c) != nil {
		return false
	}
	for _, req := range r.Requested {
		if req == c {
			return true
		}
	}
	return false
}

// Err returns the error of capability c, or nil.
func (r *Result) Err(c Capability) error {
	for _, f := range r.Failures {
		if f.Capability == c {
			return f.Err
		}
	}
	return nil
}

// IsBlank reports whether text is empty or whitespace only.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// Analyze runs each requested capability (all of them when caps is empty)
// once, in the order of AllCapabilities. A failing call is recorded in
// Result.Failures and does not stop the remaining calls. Blank text returns
// ErrEmptyText without calling a.
func Analyze(ctx context.Context, a Analyzer, text string, caps ...Capability) (*Result, error) {
	if IsBlank(text) {
		return nil, ErrEmptyText
	}

	res := &Result{Requested: ordered(caps)}
	for _, c := range res.Requested {
		if err := invoke(ctx, a, text, c, res); err != nil {
			res.Failures = append(res.Failures, Failure{Capability: c, Err: err})
		}
	}
	return res, nil
}

func ordered(caps []Capability) []Capability {
	if len(caps) == 0 {
		return AllCapabilities
	}
	var out []Capability
	for _, c := range AllCapabilities {
		for _, want := range caps {
			if c == want {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func invoke(ctx context.Context, a Analyzer, text string, c Capability, res *Result) error {
	switch c {
	case CapabilityLanguage:
		lang, err := a.DetectLanguage(ctx, text)
		if err != nil {
			return err
		}
		res.Language = &lang
	case CapabilitySentiment:
		sentiment, err := a.AnalyzeSentiment(ctx, text)
		if err != nil {
			return err
		}
		res.Sentiment = &sentiment
	case CapabilityKeyPhrases:
		phrases, err := a.ExtractKeyPhrases(ctx, text)
		if err != nil {
			return err
		}
		res.KeyPhrases = phrases
	case CapabilityEntities:
		entities, err := a.RecognizeEntities(ctx, text)
		if err != nil {
			return err
		}
		res.Entities = entities
	case CapabilityLinkedEntities:
		linked, err := a.RecognizeLinkedEntities(ctx, text)
		if err != nil {
			return err
		}
		res.LinkedEntities = linked
	}
	return nil
}
