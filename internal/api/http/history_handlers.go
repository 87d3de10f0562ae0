package http

import (
	"encoding/json"
	"net/http"

	auth "github.com/estudia-labs/estudia-eval/internal/auth/middleware"
	"github.com/estudia-labs/estudia-eval/internal/history"
)

func ListGradesHandler(store *history.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		learner := auth.SubjectFromContext(r.Context())
		recs, err := store.ListByLearner(r.Context(), learner)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(recs)
	}
}
