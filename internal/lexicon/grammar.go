// Package lexicon defines verbs and the grammatical categories used to drill them.
package lexicon

import (
	"fmt"
	"strings"
)

// Person is a grammatical person in conjugation order.
type Person int

const (
	Io Person = iota
	Tu
	LuiLei
	Noi
	Voi
	Loro
)

var personNames = [...]string{Io: "io", Tu: "tu", LuiLei: "lui/lei", Noi: "noi", Voi: "voi", Loro: "loro"}

// Persons lists all six persons in conjugation order.
var Persons = []Person{Io, Tu, LuiLei, Noi, Voi, Loro}

// ImperativePersons lists the persons that have an imperative form.
var ImperativePersons = []Person{Tu, Noi, Voi}

func (p Person) isValid() bool {
	return p >= Io && p <= Loro
}

// String returns the pronoun label ("io", "tu", ...).
func (p Person) String() string {
	if p.isValid() {
		return personNames[p]
	}
	return fmt.Sprintf("Person(%d)", int(p))
}

// ParsePerson resolves a pronoun label.
func ParsePerson(s string) (Person, error) {
	for i, name := range personNames {
		if name == s {
			return Person(i), nil
		}
	}
	return 0, fmt.Errorf("unknown person %q", s)
}

// Tense identifies one of the drilled tenses.
type Tense int

const (
	Presente Tense = iota + 1
	Imperfetto
	PassatoProssimo
	Imperativo
)

var tenseNames = [...]string{
	Presente:        "presente",
	Imperfetto:      "imperfetto",
	PassatoProssimo: "passato_prossimo",
	Imperativo:      "imperativo",
}

// AllTenses lists every tense in display order.
var AllTenses = []Tense{Presente, Imperfetto, PassatoProssimo, Imperativo}

// Valid reports whether t is one of the known tenses.
func (t Tense) Valid() bool {
	return t >= Presente && t <= Imperativo
}

// String returns the tense identifier ("presente", "imperfetto", ...).
func (t Tense) String() string {
	if t.Valid() {
		return tenseNames[t]
	}
	return fmt.Sprintf("Tense(%d)", int(t))
}

// Persons returns the persons a card can be drawn for in this tense.
func (t Tense) Persons() []Person {
	switch t {
	case Imperativo:
		return ImperativePersons
	case Presente, Imperfetto, PassatoProssimo:
		return Persons
	default:
		return nil
	}
}

// ParseTense resolves a tense identifier, case-insensitively.
func ParseTense(s string) (Tense, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range AllTenses {
		if tenseNames[t] == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tense %q (valid: %s)", s, strings.Join(TenseNames(AllTenses), ", "))
}

// ParseTenses resolves a list of tense identifiers, dropping duplicates.
func ParseTenses(names []string) ([]Tense, error) {
	seen := map[Tense]bool{}
	out := make([]Tense, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		t, err := ParseTense(name)
		if err != nil {
			return nil, err
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}

// TenseNames returns the identifiers of the given tenses.
func TenseNames(tenses []Tense) []string {
	out := make([]string, len(tenses))
	for i, t := range tenses {
		out[i] = t.String()
	}
	return out
}

// Auxiliary is the verb used to build the passato prossimo.
type Auxiliary int

const (
	Avere Auxiliary = iota + 1
	Essere
)

// String returns the auxiliary infinitive.
func (a Auxiliary) String() string {
	switch a {
	case Avere:
		return "avere"
	case Essere:
		return "essere"
	default:
		return fmt.Sprintf("Auxiliary(%d)", int(a))
	}
}

// ParseAuxiliary resolves "avere" or "essere".
func ParseAuxiliary(s string) (Auxiliary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "avere":
		return Avere, nil
	case "essere":
		return Essere, nil
	default:
		return 0, fmt.Errorf("unknown auxiliary %q", s)
	}
}

// Imperative holds the forms for the three persons that have one.
type Imperative struct {
	Tu  string
	Noi string
	Voi string
}

// For returns the imperative form for p. ok is false for persons without one.
func (imp Imperative) For(p Person) (form string, ok bool) {
	switch p {
	case Tu:
		return imp.Tu, true
	case Noi:
		return imp.Noi, true
	case Voi:
		return imp.Voi, true
	default:
		return "", false
	}
}
