package quiz

import (
	"errors"
	"testing"
)

func rawSingle(correct any) RawQuestion {
	return RawQuestion{
		Pregunta: "¿Cuál es?",
		Tipo:     "alternativas",
		Alternativas: []RawOption{
			{Letra: "a", Texto: "uno"},
			{Letra: "b", Texto: "dos"},
			{Letra: "c", Texto: "tres"},
		},
		Correcta: correct,
	}
}

func TestBuildQuestionsMapsKinds(t *testing.T) {
	raw := []RawQuestion{
		rawSingle("b"),
		{
			Pregunta: "¿Cuáles?",
			Tipo:     "seleccion_multiple",
			Alternativas: []RawOption{
				{Letra: "a"}, {Letra: "b"}, {Letra: "c"},
			},
			Correctas: []string{"a", "c"},
		},
		{
			Pregunta: "¿Es cierto?",
			Tipo:     "verdadero_falso",
			Correcta: true,
		},
	}
	qs, err := BuildQuestions(raw)
	if err != nil {
		t.Fatal(err)
	}
	if qs[0].Kind != SingleChoice || qs[1].Kind != MultipleChoice || qs[2].Kind != TrueFalse {
		t.Fatalf("kinds = %v %v %v", qs[0].Kind, qs[1].Kind, qs[2].Kind)
	}
	for i, q := range qs {
		if q.ID != i {
			t.Fatalf("ids should be ordinal, got %d at %d", q.ID, i)
		}
	}
	// bare-boolean true/false gets synthesized options
	if len(qs[2].Options) != 2 {
		t.Fatalf("true/false options = %v", qs[2].Options)
	}
	if !Correct(qs[2], "verdadero") || !Correct(qs[2], "v") {
		t.Fatal("boolean key should accept verdadero synonyms")
	}
}

func TestBuildQuestionsFieldNameFallback(t *testing.T) {
	// upstream is inconsistent: respuesta_correcta / respuestas_correctas
	// must be probed when the short names are absent
	long := rawSingle(nil)
	long.RespuestaCorrecta = "c"
	qs, err := BuildQuestions([]RawQuestion{long})
	if err != nil {
		t.Fatal(err)
	}
	if !Correct(qs[0], "c") {
		t.Fatal("respuesta_correcta fallback not honored")
	}

	multi := RawQuestion{
		Pregunta:            "¿Cuáles?",
		Tipo:                "seleccion_multiple",
		Alternativas:        []RawOption{{Letra: "a"}, {Letra: "b"}},
		RespuestasCorrectas: []string{"a", "b"},
	}
	qs, err = BuildQuestions([]RawQuestion{multi})
	if err != nil {
		t.Fatal(err)
	}
	if !Correct(qs[0], []string{"b", "a"}) {
		t.Fatal("respuestas_correctas fallback not honored")
	}
}

func TestBuildQuestionsShortNameWins(t *testing.T) {
	r := rawSingle("a")
	r.RespuestaCorrecta = "b"
	qs, err := BuildQuestions([]RawQuestion{r})
	if err != nil {
		t.Fatal(err)
	}
	if !Correct(qs[0], "a") || Correct(qs[0], "b") {
		t.Fatal("correcta should take precedence over respuesta_correcta")
	}
}

func TestBuildQuestionsRejectsMultiWithoutSet(t *testing.T) {
	r := RawQuestion{
		Pregunta:     "¿Cuáles?",
		Tipo:         "seleccion_multiple",
		Alternativas: []RawOption{{Letra: "a"}, {Letra: "b"}},
		Correcta:     "a", // wrong shape for this kind
	}
	if _, err := BuildQuestions([]RawQuestion{r}); !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("want ErrInvalidQuestion, got %v", err)
	}
}

func TestBuildQuestionsRejectsDanglingKey(t *testing.T) {
	if _, err := BuildQuestions([]RawQuestion{rawSingle("z")}); !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("want ErrInvalidQuestion for dangling key, got %v", err)
	}
}

func TestBuildQuestionsAtomic(t *testing.T) {
	raw := []RawQuestion{rawSingle("a"), {Pregunta: "rota", Tipo: "ensayo"}}
	qs, err := BuildQuestions(raw)
	if err == nil {
		t.Fatal("want error for unknown tipo")
	}
	if qs != nil {
		t.Fatal("partial question list must never be returned")
	}
}

func TestBuildQuestionsRejectsEmptyList(t *testing.T) {
	if _, err := BuildQuestions(nil); !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("want ErrInvalidQuestion, got %v", err)
	}
}
