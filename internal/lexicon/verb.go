package lexicon

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrInvalidVerb reports a verb record that is missing required data.
var ErrInvalidVerb = errors.New("invalid verb record")

//go:embed verbs.json
var defaultVerbs []byte

// Verb is one lexicon entry. Verbs are not modified after loading.
type Verb struct {
	Infinitive     string
	Translation    string
	Present        [6]string
	NoiPresent     string
	Auxiliary      Auxiliary
	PastParticiple string
	Imperative     Imperative
	// IrregularImperfect overrides the derived imperfect when non-nil.
	IrregularImperfect *[6]string
}

type verbRecord struct {
	Infinitive         string            `json:"infinitive"`
	Translation        string            `json:"translation_fi"`
	Present            []string          `json:"present"`
	NoiPresent         string            `json:"noi_present"`
	Auxiliary          string            `json:"auxiliary"`
	PastParticiple     string            `json:"past_participle"`
	Imperative         map[string]string `json:"imperative"`
	IrregularImperfect []string          `json:"irregular_imperfect"`
}

// Default returns the lexicon bundled with the binary.
func Default() ([]Verb, error) {
	return Parse(bytes.NewReader(defaultVerbs))
}

// Load reads a JSON lexicon from path.
func Load(path string) ([]Verb, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only lexicon.
			_ = cerr
		}
	}()
	return Parse(file)
}

// Parse decodes a JSON array of verb records and validates each one.
func Parse(r io.Reader) ([]Verb, error) {
	var records []verbRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode lexicon: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("lexicon is empty")
	}
	verbs := make([]Verb, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		v, err := rec.toVerb()
		if err != nil {
			return nil, fmt.Errorf("verb #%d: %w", i+1, err)
		}
		if seen[v.Infinitive] {
			return nil, fmt.Errorf("verb #%d: %w: duplicate infinitive %q", i+1, ErrInvalidVerb, v.Infinitive)
		}
		seen[v.Infinitive] = true
		verbs = append(verbs, v)
	}
	return verbs, nil
}

func (rec verbRecord) toVerb() (Verb, error) {
	if rec.Infinitive == "" {
		return Verb{}, fmt.Errorf("%w: missing infinitive", ErrInvalidVerb)
	}
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidVerb, rec.Infinitive, fmt.Sprintf(format, args...))
	}
	if len(rec.Present) != len(Persons) {
		return Verb{}, invalid("present has %d forms, want %d", len(rec.Present), len(Persons))
	}
	if rec.NoiPresent == "" {
		return Verb{}, invalid("missing noi_present")
	}
	if rec.PastParticiple == "" {
		return Verb{}, invalid("missing past_participle")
	}
	aux, err := ParseAuxiliary(rec.Auxiliary)
	if err != nil {
		return Verb{}, invalid("%v", err)
	}
	if len(rec.Imperative) != len(ImperativePersons) {
		return Verb{}, invalid("imperative has %d forms, want %d", len(rec.Imperative), len(ImperativePersons))
	}
	var imp Imperative
	for label, form := range rec.Imperative {
		p, err := ParsePerson(label)
		if err != nil {
			return Verb{}, invalid("imperative: %v", err)
		}
		if form == "" {
			return Verb{}, invalid("imperative form for %s is empty", p)
		}
		switch p {
		case Tu:
			imp.Tu = form
		case Noi:
			imp.Noi = form
		case Voi:
			imp.Voi = form
		default:
			return Verb{}, invalid("imperative has no %q form", label)
		}
	}

	v := Verb{
		Infinitive:     rec.Infinitive,
		Translation:    rec.Translation,
		NoiPresent:     rec.NoiPresent,
		Auxiliary:      aux,
		PastParticiple: rec.PastParticiple,
		Imperative:     imp,
	}
	copy(v.Present[:], rec.Present)
	for i, form := range v.Present {
		if form == "" {
			return Verb{}, invalid("present form for %s is empty", Persons[i])
		}
	}
	if len(rec.IrregularImperfect) > 0 {
		if len(rec.IrregularImperfect) != len(Persons) {
			return Verb{}, invalid("irregular_imperfect has %d forms, want %d", len(rec.IrregularImperfect), len(Persons))
		}
		var forms [6]string
		copy(forms[:], rec.IrregularImperfect)
		for i, form := range forms {
			if form == "" {
				return Verb{}, invalid("irregular_imperfect form for %s is empty", Persons[i])
			}
		}
		v.IrregularImperfect = &forms
	}
	return v, nil
}

// Find returns the verb with the given infinitive.
func Find(verbs []Verb, infinitive string) (*Verb, bool) {
	for i := range verbs {
		if verbs[i].Infinitive == infinitive {
			return &verbs[i], true
		}
	}
	return nil, false
}
