package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	auth "github.com/estudia-labs/estudia-eval/internal/auth/middleware"
	"github.com/estudia-labs/estudia-eval/internal/quiz"
	"github.com/estudia-labs/estudia-eval/internal/session"
)

type fakeGenerator struct {
	raw []quiz.RawQuestion
	err error
}

func (g *fakeGenerator) Generate(context.Context, session.CourseRef) ([]quiz.RawQuestion, error) {
	return g.raw, g.err
}

func testQuestions() []quiz.RawQuestion {
	return []quiz.RawQuestion{
		{
			Pregunta:     "¿Capital de Chile?",
			Tipo:         "alternativas",
			Alternativas: []quiz.RawOption{{Letra: "a", Texto: "Santiago"}, {Letra: "b", Texto: "Lima"}},
			Correcta:     "a",
		},
		{
			Pregunta:     "¿Cuáles son puertos?",
			Tipo:         "seleccion_multiple",
			Alternativas: []quiz.RawOption{{Letra: "a", Texto: "Valparaíso"}, {Letra: "b", Texto: "Rancagua"}, {Letra: "c", Texto: "San Antonio"}},
			Correctas:    []string{"a", "c"},
		},
	}
}

func testRouter(gen session.Generator) *chi.Mux {
	m := session.NewManager(gen, nil)
	r := chi.NewRouter()
	// inject the learner the way JWTMiddleware would
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithSubject(req.Context(), "ana")))
		})
	})
	r.Get("/evaluations", SnapshotHandler(m))
	r.Post("/evaluations/start", StartEvaluationHandler(m))
	r.Post("/evaluations/answer", SetAnswerHandler(m))
	r.Post("/evaluations/next", NextQuestionHandler(m))
	r.Post("/evaluations/prev", PrevQuestionHandler(m))
	r.Post("/evaluations/finish", FinishEvaluationHandler(m))
	r.Post("/evaluations/reset", ResetEvaluationHandler(m))
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) (int, session.Snapshot) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var snap session.Snapshot
	if w.Code == 200 {
		if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
			t.Fatalf("decode snapshot: %v", err)
		}
	}
	return w.Code, snap
}

func TestEvaluationFlow(t *testing.T) {
	r := testRouter(&fakeGenerator{raw: testQuestions()})

	code, snap := doJSON(t, r, "POST", "/evaluations/start", `{"course":"historia","book":"tomo 1","topic":"geografía"}`)
	if code != 200 || snap.Status != session.StatusActive || snap.Total != 2 {
		t.Fatalf("start: code=%d snap=%+v", code, snap)
	}
	if snap.CurrentQuestion == nil {
		t.Fatal("no current question")
	}
	// answer key must not leak to an active learner
	if strings.Contains(mustJSON(t, snap), "correct_answer") {
		t.Fatal("key leaked into active snapshot")
	}

	_, snap = doJSON(t, r, "POST", "/evaluations/answer", `{"value":"a"}`)
	if snap.CurrentQuestion.Answer != "a" {
		t.Fatalf("answer not stored: %+v", snap.CurrentQuestion)
	}

	_, snap = doJSON(t, r, "POST", "/evaluations/next", "")
	if snap.CurrentIndex != 1 || !snap.IsLastQuestion {
		t.Fatalf("next: %+v", snap)
	}

	_, snap = doJSON(t, r, "POST", "/evaluations/answer", `{"value":["c","a"]}`)
	code, snap = doJSON(t, r, "POST", "/evaluations/finish", "")
	if code != 200 || snap.Status != session.StatusReviewing {
		t.Fatalf("finish: code=%d snap=%+v", code, snap)
	}
	if snap.Result == nil || snap.Result.CorrectCount != 2 || snap.Result.Grade != 7.0 {
		t.Fatalf("result = %+v", snap.Result)
	}
	if len(snap.Review) != 2 || !snap.Review[1].Correct {
		t.Fatalf("review = %+v", snap.Review)
	}

	_, snap = doJSON(t, r, "POST", "/evaluations/reset", "")
	if snap.Status != session.StatusIdle {
		t.Fatalf("reset: %+v", snap)
	}
}

func TestStartRequiresCourseAndBook(t *testing.T) {
	r := testRouter(&fakeGenerator{raw: testQuestions()})
	code, _ := doJSON(t, r, "POST", "/evaluations/start", `{"topic":"x"}`)
	if code != 400 {
		t.Fatalf("code = %d, want 400", code)
	}
}

func TestStartBubblesGenerationFailure(t *testing.T) {
	r := testRouter(&fakeGenerator{err: context.DeadlineExceeded})
	code, _ := doJSON(t, r, "POST", "/evaluations/start", `{"course":"historia","book":"tomo 1"}`)
	if code != http.StatusBadGateway {
		t.Fatalf("code = %d, want 502", code)
	}
}

func TestMisuseIsANoop(t *testing.T) {
	r := testRouter(&fakeGenerator{raw: testQuestions()})
	// no start: every mutation is a 200 no-op on an idle session
	for _, path := range []string{"/evaluations/next", "/evaluations/prev", "/evaluations/finish"} {
		code, snap := doJSON(t, r, "POST", path, "")
		if code != 200 || snap.Status != session.StatusIdle {
			t.Fatalf("%s: code=%d status=%v", path, code, snap.Status)
		}
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
