// Package conjugate derives the expected surface form for a card.
package conjugate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/teepaa516/italian-verbit/internal/card"
	"github.com/teepaa516/italian-verbit/internal/lexicon"
)

// ErrUnknownTense is returned for a card whose tense is not drillable.
var ErrUnknownTense = errors.New("unknown tense")

// ErrNoForm is returned for a person the tense has no form for.
var ErrNoForm = errors.New("no form for person")

const noiSuffix = "iamo"

var imperfectEndings = [6]string{"vo", "vi", "va", "vamo", "vate", "vano"}

var (
	essereForms = [6]string{"sono", "sei", "è", "siamo", "siete", "sono"}
	avereForms  = [6]string{"ho", "hai", "ha", "abbiamo", "avete", "hanno"}
)

// stemFix corrects the imperfect base of verbs whose noi-present stem differs
// from the imperfect stem. It fires on the stored noi-present prefix.
type stemFix struct {
	infinitive string
	prefix     string
	base       string
}

var stemFixes = []stemFix{
	{infinitive: "fare", prefix: "fac", base: "face"},
	{infinitive: "dire", prefix: "dici", base: "dice"},
}

// Expected returns the correct form for c.
func Expected(c card.Card) (string, error) {
	v := c.Verb
	switch c.Tense {
	case lexicon.Presente:
		if !validPerson(c.Person) {
			return "", fmt.Errorf("%w: %s %s", ErrNoForm, c.Tense, c.Person)
		}
		return v.Present[c.Person], nil
	case lexicon.Imperfetto:
		if !validPerson(c.Person) {
			return "", fmt.Errorf("%w: %s %s", ErrNoForm, c.Tense, c.Person)
		}
		return Imperfect(v)[c.Person], nil
	case lexicon.PassatoProssimo:
		if !validPerson(c.Person) {
			return "", fmt.Errorf("%w: %s %s", ErrNoForm, c.Tense, c.Person)
		}
		return PassatoProssimo(v)[c.Person], nil
	case lexicon.Imperativo:
		form, ok := v.Imperative.For(c.Person)
		if !ok {
			return "", fmt.Errorf("%w: %s %s", ErrNoForm, c.Tense, c.Person)
		}
		return form, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownTense, c.Tense)
	}
}

// MustExpected is Expected for cards produced by card.Enumerate. It panics on
// error since such a card can only fail through a programming mistake.
func MustExpected(c card.Card) string {
	form, err := Expected(c)
	if err != nil {
		panic(fmt.Sprintf("conjugate %s: %v", c.Key(), err))
	}
	return form
}

// Imperfect returns all six imperfect forms of v.
func Imperfect(v *lexicon.Verb) [6]string {
	if v.IrregularImperfect != nil {
		return *v.IrregularImperfect
	}
	base := ImperfectBase(v)
	var forms [6]string
	for i, ending := range imperfectEndings {
		forms[i] = base + ending
	}
	return forms
}

// ImperfectBase strips the noi-present ending and applies the stem fixes.
func ImperfectBase(v *lexicon.Verb) string {
	runes := []rune(v.NoiPresent)
	strip := 3
	if strings.HasSuffix(v.NoiPresent, noiSuffix) {
		strip = len([]rune(noiSuffix))
	}
	if strip > len(runes) {
		strip = len(runes)
	}
	base := string(runes[:len(runes)-strip])
	for _, fix := range stemFixes {
		if v.Infinitive == fix.infinitive && strings.HasPrefix(v.NoiPresent, fix.prefix) {
			base = fix.base
		}
	}
	return base
}

// PassatoProssimo returns the six compound-past forms: auxiliary plus the
// invariant past participle.
func PassatoProssimo(v *lexicon.Verb) [6]string {
	aux := avereForms
	if v.Auxiliary == lexicon.Essere {
		aux = essereForms
	}
	var forms [6]string
	for i, a := range aux {
		forms[i] = a + " " + v.PastParticiple
	}
	return forms
}

func validPerson(p lexicon.Person) bool {
	return p >= lexicon.Io && p <= lexicon.Loro
}
