package session

import "github.com/estudia-labs/estudia-eval/internal/quiz"

// QuestionView is the learner-facing shape of the current question: no
// grading key, no explanation while the attempt is live.
type QuestionView struct {
	ID      int           `json:"id"`
	Prompt  string        `json:"prompt"`
	Kind    quiz.Kind     `json:"kind"`
	Options []quiz.Option `json:"options"`
	Answer  any           `json:"answer,omitempty"`
}

// ReviewItem is the post-submission detail for one question. Correctness
// is recomputed from the scoring rule, never cached separately.
type ReviewItem struct {
	ID            int           `json:"id"`
	Prompt        string        `json:"prompt"`
	Kind          quiz.Kind     `json:"kind"`
	Options       []quiz.Option `json:"options"`
	Answer        any           `json:"answer,omitempty"`
	CorrectAnswer any           `json:"correct_answer"`
	Correct       bool          `json:"correct"`
	Explanation   string        `json:"explanation,omitempty"`
}

// Snapshot is the read-only view handed to the presentation layer after
// every operation.
type Snapshot struct {
	Status           Status        `json:"status"`
	AttemptID        string        `json:"attempt_id,omitempty"`
	Ref              CourseRef     `json:"ref,omitempty"`
	CurrentIndex     int           `json:"current_index"`
	Total            int           `json:"total"`
	IsLastQuestion   bool          `json:"is_last_question"`
	CurrentQuestion  *QuestionView `json:"current_question,omitempty"`
	TimerActive      bool          `json:"timer_active"`
	TimeRemainingSec int           `json:"time_remaining_sec"`
	Result           *quiz.Result  `json:"result,omitempty"`
	Review           []ReviewItem  `json:"review,omitempty"`
}

// Snapshot returns the current state. Review detail (answers, keys,
// explanations) appears only once the session is reviewing.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Status:           s.status,
		AttemptID:        s.attemptID,
		Ref:              s.ref,
		CurrentIndex:     s.current,
		Total:            len(s.questions),
		TimerActive:      s.timer != nil,
		TimeRemainingSec: s.remaining,
		Result:           s.result,
	}
	if len(s.questions) > 0 {
		snap.IsLastQuestion = s.current == len(s.questions)-1
	}

	switch s.status {
	case StatusActive:
		q := s.questions[s.current]
		snap.CurrentQuestion = &QuestionView{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Kind:    q.Kind,
			Options: q.Options,
			Answer:  s.answers[q.ID],
		}
	case StatusReviewing:
		snap.Review = make([]ReviewItem, 0, len(s.questions))
		for _, q := range s.questions {
			ans := s.answers[q.ID]
			snap.Review = append(snap.Review, ReviewItem{
				ID:            q.ID,
				Prompt:        q.Prompt,
				Kind:          q.Kind,
				Options:       q.Options,
				Answer:        ans,
				CorrectAnswer: quiz.CanonicalCorrect(q),
				Correct:       quiz.Correct(q, ans),
				Explanation:   q.Explanation,
			})
		}
	}
	return snap
}
