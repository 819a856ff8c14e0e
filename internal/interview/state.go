package interview

// Pool identifies a named subset of the question bank, paired with its
// own generator and sentinel fallback.
type Pool string

const (
	PoolHR        Pool = "hr"
	PoolTechnical Pool = "technical"
)

// Difficulty is the candidate's self-declared experience level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Status is the session lifecycle state. It is monotonic: once a session
// reaches StatusDone it never reverts.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// QAPair is one stored turn: the question shown and the answer given.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuestionEval is the per-question portion of the final evaluation.
type QuestionEval struct {
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Evaluation string  `json:"evaluation"`
	Score      float64 `json:"score"`
}

// Feedback is the structured summary evaluation produced at the end of
// a session.
type Feedback struct {
	OverallScore float64        `json:"overall_score"`
	Summary      string         `json:"summary"`
	Strengths    []string       `json:"strengths"`
	Improvements []string       `json:"improvements"`
	Detailed     []QuestionEval `json:"detailed_feedback"`
}

// FallbackFeedback is the fixed placeholder stored when feedback
// synthesis fails. The session still terminates.
func FallbackFeedback() *Feedback {
	return &Feedback{
		OverallScore: 0,
		Summary:      "Feedback generation failed.",
		Strengths:    []string{},
		Improvements: []string{},
		Detailed:     []QuestionEval{},
	}
}

// State is the single record threaded through every step of a session.
// The engine receives it by value and returns a new value; the caller
// owns the canonical copy between calls.
type State struct {
	SessionID  string     `json:"sessionId,omitempty"`
	UserID     int64      `json:"userId,omitempty"`
	Category   Pool       `json:"category"`
	Difficulty Difficulty `json:"difficulty"`

	QuestionIndex  int `json:"questionIndex"`
	TotalQuestions int `json:"totalQuestions"`

	QuestionAndAnswerLog    []QAPair `json:"questionAndAnswerLog"`
	AskedQuestionIDs        []int64  `json:"askedQuestionIds"`
	AskedGeneratedQuestions []string `json:"askedGeneratedQuestions"`

	CurrentQuestion   *string `json:"currentQuestion"`
	CurrentQuestionID *int64  `json:"currentQuestionId"`
	LatestAnswer      *string `json:"latestAnswer"`

	Status   Status    `json:"status"`
	Feedback *Feedback `json:"feedback"`
}

// Clone returns a deep copy of the state. The engine clones on entry so
// that appends inside nodes never alias the caller's slices.
func (s State) Clone() State {
	c := s
	c.QuestionAndAnswerLog = append([]QAPair(nil), s.QuestionAndAnswerLog...)
	c.AskedQuestionIDs = append([]int64(nil), s.AskedQuestionIDs...)
	c.AskedGeneratedQuestions = append([]string(nil), s.AskedGeneratedQuestions...)
	if s.CurrentQuestion != nil {
		v := *s.CurrentQuestion
		c.CurrentQuestion = &v
	}
	if s.CurrentQuestionID != nil {
		v := *s.CurrentQuestionID
		c.CurrentQuestionID = &v
	}
	if s.LatestAnswer != nil {
		v := *s.LatestAnswer
		c.LatestAnswer = &v
	}
	if s.Feedback != nil {
		fb := *s.Feedback
		fb.Strengths = append([]string(nil), s.Feedback.Strengths...)
		fb.Improvements = append([]string(nil), s.Feedback.Improvements...)
		fb.Detailed = append([]QuestionEval(nil), s.Feedback.Detailed...)
		c.Feedback = &fb
	}
	return c
}

// askedTexts collects every question text already shown in this session,
// whether answered (in the log) or generated and pending.
func (s *State) askedTexts() map[string]bool {
	seen := make(map[string]bool, len(s.QuestionAndAnswerLog)+len(s.AskedGeneratedQuestions))
	for _, qa := range s.QuestionAndAnswerLog {
		seen[qa.Question] = true
	}
	for _, q := range s.AskedGeneratedQuestions {
		seen[q] = true
	}
	return seen
}

// loggedTexts collects only the question texts of stored answers.
func (s *State) loggedTexts() map[string]bool {
	seen := make(map[string]bool, len(s.QuestionAndAnswerLog))
	for _, qa := range s.QuestionAndAnswerLog {
		seen[qa.Question] = true
	}
	return seen
}

// hasAskedID reports whether the given bank question id was already shown.
func (s *State) hasAskedID(id int64) bool {
	for _, v := range s.AskedQuestionIDs {
		if v == id {
			return true
		}
	}
	return false
}
