package quiz

import (
	"errors"
	"fmt"
)

// Kind classifies a question by how its answer is shaped.
type Kind string

const (
	SingleChoice   Kind = "single_choice"
	MultipleChoice Kind = "multiple_choice"
	TrueFalse      Kind = "true_false"
)

type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is one quiz item plus its grading key. Immutable after
// BuildQuestions; Correct keeps whatever shape upstream sent (string id,
// bool, or list of ids) and is only interpreted at comparison time.
type Question struct {
	ID          int      `json:"id"`
	Prompt      string   `json:"prompt"`
	Kind        Kind     `json:"kind"`
	Options     []Option `json:"options"`
	Correct     any      `json:"correct,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// ErrInvalidQuestion marks an upstream record that cannot become a Question.
var ErrInvalidQuestion = errors.New("invalid question")

// RawQuestion is the wire shape the content generator produces. The
// generator is inconsistent about the correct-answer field name, so both
// the short and the long variants are carried and probed in order.
type RawQuestion struct {
	Pregunta            string      `json:"pregunta"`
	Tipo                string      `json:"tipo"`
	Alternativas        []RawOption `json:"alternativas"`
	Correcta            any         `json:"correcta"`
	RespuestaCorrecta   any         `json:"respuesta_correcta"`
	Correctas           []string    `json:"correctas"`
	RespuestasCorrectas []string    `json:"respuestas_correctas"`
	Explicacion         string      `json:"explicacion"`
}

type RawOption struct {
	Letra string `json:"letra"`
	Texto string `json:"texto"`
}

// BuildQuestions validates and converts a full upstream list. All-or-nothing:
// one bad record fails the whole batch so a learner never sees a partial set.
func BuildQuestions(raw []RawQuestion) ([]Question, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty question list", ErrInvalidQuestion)
	}
	out := make([]Question, 0, len(raw))
	for i, r := range raw {
		q, err := buildQuestion(i, r)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func buildQuestion(id int, r RawQuestion) (Question, error) {
	kind, err := kindFromTipo(r.Tipo)
	if err != nil {
		return Question{}, fmt.Errorf("question %d: %w", id, err)
	}

	q := Question{
		ID:          id,
		Prompt:      r.Pregunta,
		Kind:        kind,
		Options:     optionsFromRaw(r.Alternativas),
		Explanation: r.Explicacion,
	}

	switch kind {
	case MultipleChoice:
		set := r.Correctas
		if len(set) == 0 {
			set = r.RespuestasCorrectas
		}
		if len(set) == 0 {
			return Question{}, fmt.Errorf("%w: question %d: multiple_choice needs a correct-answer set", ErrInvalidQuestion, id)
		}
		q.Correct = set
	default:
		single := r.Correcta
		if single == nil {
			single = r.RespuestaCorrecta
		}
		switch single.(type) {
		case string, bool:
		default:
			return Question{}, fmt.Errorf("%w: question %d: correct answer must be a string or boolean, got %T", ErrInvalidQuestion, id, single)
		}
		q.Correct = single
	}

	if kind == TrueFalse && len(q.Options) == 0 {
		// bare-boolean verdadero/falso records come without alternativas
		q.Options = []Option{{ID: "v", Text: "Verdadero"}, {ID: "f", Text: "Falso"}}
	}
	if len(q.Options) == 0 {
		return Question{}, fmt.Errorf("%w: question %d: no options", ErrInvalidQuestion, id)
	}

	if err := checkKey(q); err != nil {
		return Question{}, fmt.Errorf("%w: question %d: %v", ErrInvalidQuestion, id, err)
	}
	return q, nil
}

func kindFromTipo(tipo string) (Kind, error) {
	switch tipo {
	case "alternativas":
		return SingleChoice, nil
	case "seleccion_multiple":
		return MultipleChoice, nil
	case "verdadero_falso":
		return TrueFalse, nil
	default:
		return "", fmt.Errorf("%w: unknown tipo %q", ErrInvalidQuestion, tipo)
	}
}

func optionsFromRaw(raw []RawOption) []Option {
	out := make([]Option, 0, len(raw))
	for _, o := range raw {
		out = append(out, Option{ID: o.Letra, Text: o.Texto})
	}
	return out
}

// checkKey verifies the grading key references real options once normalized.
func checkKey(q Question) error {
	ids := make(map[string]struct{}, len(q.Options))
	for _, o := range q.Options {
		ids[NormalizeSingle(o.ID)] = struct{}{}
	}
	switch q.Kind {
	case MultipleChoice:
		set := NormalizeSet(q.Correct)
		if len(set) == 0 {
			return errors.New("empty correct-answer set")
		}
		for v := range set {
			if _, ok := ids[NormalizeSingle(v)]; !ok {
				return fmt.Errorf("correct option %q not among options", v)
			}
		}
	default:
		v := NormalizeSingle(q.Correct)
		if v == "" {
			return errors.New("missing correct answer")
		}
		if _, ok := ids[v]; !ok {
			return fmt.Errorf("correct option %q not among options", v)
		}
	}
	return nil
}
