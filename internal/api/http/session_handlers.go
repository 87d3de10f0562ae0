package http

import (
	"encoding/json"
	"errors"
	"net/http"

	auth "github.com/estudia-labs/estudia-eval/internal/auth/middleware"
	"github.com/estudia-labs/estudia-eval/internal/quiz"
	"github.com/estudia-labs/estudia-eval/internal/session"
)

func StartEvaluationHandler(m *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Course       string `json:"course"`
			Book         string `json:"book"`
			Topic        string `json:"topic"`
			TimeLimitSec *int   `json:"time_limit_sec,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.Course == "" || req.Book == "" {
			http.Error(w, "course and book required", 400)
			return
		}
		limit := -1
		if req.TimeLimitSec != nil {
			limit = *req.TimeLimitSec
		}

		sess := m.ForLearner(auth.SubjectFromContext(r.Context()))
		ref := session.CourseRef{Course: req.Course, Book: req.Book, Topic: req.Topic}
		if err := sess.Start(r.Context(), ref, limit); err != nil {
			switch {
			case errors.Is(err, session.ErrGeneration), errors.Is(err, quiz.ErrInvalidQuestion):
				http.Error(w, err.Error(), http.StatusBadGateway)
			default:
				http.Error(w, err.Error(), 500)
			}
			return
		}
		_ = json.NewEncoder(w).Encode(sess.Snapshot())
	}
}

func SetAnswerHandler(m *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Value any `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		sess := m.ForLearner(auth.SubjectFromContext(r.Context()))
		sess.SetAnswer(req.Value)
		_ = json.NewEncoder(w).Encode(sess.Snapshot())
	}
}

func NextQuestionHandler(m *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := m.ForLearner(auth.SubjectFromContext(r.Context()))
		sess.Next()
		_ = json.NewEncoder(w).Encode(sess.Snapshot())
	}
}

func PrevQuestionHandler(m *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := m.ForLearner(auth.SubjectFromContext(r.Context()))
		sess.Prev()
		_ = json.NewEncoder(w).Encode(sess.Snapshot())
	}
}

func FinishEvaluationHandler(m *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := m.ForLearner(auth.SubjectFromContext(r.Context()))
		sess.Finish()
		_ = json.NewEncoder(w).Encode(sess.Snapshot())
	}
}

func ResetEvaluationHandler(m *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := m.ForLearner(auth.SubjectFromContext(r.Context()))
		sess.Reset()
		_ = json.NewEncoder(w).Encode(sess.Snapshot())
	}
}

func SnapshotHandler(m *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := m.ForLearner(auth.SubjectFromContext(r.Context()))
		_ = json.NewEncoder(w).Encode(sess.Snapshot())
	}
}
