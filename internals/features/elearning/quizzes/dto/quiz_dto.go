package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/elearning/quizzes/model"
)

/* ===================== Quiz ===================== */

type CreateQuizRequest struct {
	CourseID         uuid.UUID  `json:"quiz_course_id" validate:"required"`
	Title            string     `json:"quiz_title" validate:"required,min=3,max=200"`
	Description      *string    `json:"quiz_description"`
	TimeLimitMinutes *int       `json:"quiz_time_limit_minutes" validate:"omitempty,min=1,max=600"`
	MaxAttempts      int        `json:"quiz_max_attempts" validate:"min=0,max=100"`
	PassingScore     float64    `json:"quiz_passing_score" validate:"min=0,max=100"`
	GradingPolicy    string     `json:"quiz_grading_policy" validate:"omitempty,oneof=highest latest average"`
	ShuffleQuestions bool       `json:"quiz_shuffle_questions"`
	AvailableFrom    *time.Time `json:"quiz_available_from"`
	AvailableUntil   *time.Time `json:"quiz_available_until"`
}

func (r CreateQuizRequest) ToModel(instansiID uuid.UUID) model.QuizModel {
	policy := r.GradingPolicy
	if policy == "" {
		policy = "highest"
	}
	return model.QuizModel{
		InstansiID:       instansiID,
		CourseID:         r.CourseID,
		Title:            strings.TrimSpace(r.Title),
		Description:      r.Description,
		TimeLimitMinutes: r.TimeLimitMinutes,
		MaxAttempts:      r.MaxAttempts,
		PassingScore:     r.PassingScore,
		GradingPolicy:    policy,
		ShuffleQuestions: r.ShuffleQuestions,
		AvailableFrom:    r.AvailableFrom,
		AvailableUntil:   r.AvailableUntil,
	}
}

type UpdateQuizRequest struct {
	Title            *string    `json:"quiz_title" validate:"omitempty,min=3,max=200"`
	Description      *string    `json:"quiz_description"`
	TimeLimitMinutes *int       `json:"quiz_time_limit_minutes" validate:"omitempty,min=0,max=600"` // 0 = hapus batas waktu
	MaxAttempts      *int       `json:"quiz_max_attempts" validate:"omitempty,min=0,max=100"`
	PassingScore     *float64   `json:"quiz_passing_score" validate:"omitempty,min=0,max=100"`
	GradingPolicy    *string    `json:"quiz_grading_policy" validate:"omitempty,oneof=highest latest average"`
	ShuffleQuestions *bool      `json:"quiz_shuffle_questions"`
	IsPublished      *bool      `json:"quiz_is_published"`
	AvailableFrom    *time.Time `json:"quiz_available_from"`
	AvailableUntil   *time.Time `json:"quiz_available_until"`
}

// Apply → kolom yang berubah + apakah GradingPolicy ikut berubah.
func (r UpdateQuizRequest) Apply() (map[string]any, bool) {
	m := map[string]any{}
	if r.Title != nil {
		m["quiz_title"] = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		m["quiz_description"] = r.Description
	}
	if r.TimeLimitMinutes != nil {
		if *r.TimeLimitMinutes == 0 {
			m["quiz_time_limit_minutes"] = nil
		} else {
			m["quiz_time_limit_minutes"] = *r.TimeLimitMinutes
		}
	}
	if r.MaxAttempts != nil {
		m["quiz_max_attempts"] = *r.MaxAttempts
	}
	if r.PassingScore != nil {
		m["quiz_passing_score"] = *r.PassingScore
	}
	if r.GradingPolicy != nil {
		m["quiz_grading_policy"] = *r.GradingPolicy
	}
	if r.ShuffleQuestions != nil {
		m["quiz_shuffle_questions"] = *r.ShuffleQuestions
	}
	if r.IsPublished != nil {
		m["quiz_is_published"] = *r.IsPublished
	}
	if r.AvailableFrom != nil {
		m["quiz_available_from"] = r.AvailableFrom
	}
	if r.AvailableUntil != nil {
		m["quiz_available_until"] = r.AvailableUntil
	}
	return m, r.GradingPolicy != nil
}

/* ===================== Question ===================== */

type QuestionRequest struct {
	Type           string                 `json:"quiz_question_type" validate:"required,oneof=single multiple true_false short_answer essay"`
	Text           string                 `json:"quiz_question_text" validate:"required"`
	Points         *float64               `json:"quiz_question_points" validate:"omitempty,min=0,max=1000"`
	Options        []model.QuestionOption `json:"quiz_question_options" validate:"omitempty,dive"`
	CorrectAnswers []string               `json:"quiz_question_correct_answers"`
	Order          *int                   `json:"quiz_question_order" validate:"omitempty,min=0"`
	Explanation    *string                `json:"quiz_question_explanation"`
}

// Check: aturan per tipe soal. Pesan kosong = valid.
func (r QuestionRequest) Check() string {
	keys := map[string]bool{}
	for _, o := range r.Options {
		k := strings.ToLower(strings.TrimSpace(o.Key))
		if k == "" {
			return "key opsi wajib diisi"
		}
		if keys[k] {
			return "key opsi duplikat: " + o.Key
		}
		keys[k] = true
	}
	correct := 0
	for _, c := range r.CorrectAnswers {
		if strings.TrimSpace(c) != "" {
			correct++
		}
	}

	switch model.QuestionType(r.Type) {
	case model.QuestionSingle, model.QuestionMultiple:
		if len(r.Options) < 2 {
			return "minimal 2 opsi jawaban"
		}
		if correct == 0 {
			return "kunci jawaban wajib diisi"
		}
		if r.Type == string(model.QuestionSingle) && correct != 1 {
			return "soal single hanya boleh 1 kunci jawaban"
		}
		for _, c := range r.CorrectAnswers {
			if !keys[strings.ToLower(strings.TrimSpace(c))] {
				return "kunci jawaban tidak ada di opsi: " + c
			}
		}
	case model.QuestionTrueFalse:
		if correct != 1 {
			return "soal benar/salah butuh 1 kunci jawaban"
		}
		v := strings.ToLower(strings.TrimSpace(r.CorrectAnswers[0]))
		if v != "true" && v != "false" {
			return "kunci benar/salah harus true atau false"
		}
	case model.QuestionShortAnswer:
		if correct == 0 {
			return "minimal 1 jawaban yang diterima"
		}
	case model.QuestionEssay:
		if correct > 0 {
			return "essay tidak memakai kunci jawaban"
		}
	}
	return ""
}

func (r QuestionRequest) ToModel(quiz model.QuizModel, nextOrder int) model.QuizQuestionModel {
	q := model.QuizQuestionModel{
		QuizID:      quiz.ID,
		InstansiID:  quiz.InstansiID,
		Type:        model.QuestionType(r.Type),
		Text:        strings.TrimSpace(r.Text),
		Points:      1,
		Order:       nextOrder,
		Explanation: r.Explanation,
	}
	r.ApplyTo(&q)
	return q
}

// ApplyTo dipakai untuk PUT (ganti penuh).
func (r QuestionRequest) ApplyTo(q *model.QuizQuestionModel) {
	q.Type = model.QuestionType(r.Type)
	q.Text = strings.TrimSpace(r.Text)
	if r.Points != nil {
		q.Points = *r.Points
	}
	if r.Order != nil {
		q.Order = *r.Order
	}
	q.Explanation = r.Explanation
	if q.Type == model.QuestionTrueFalse && len(r.Options) == 0 {
		r.Options = []model.QuestionOption{{Key: "true", Text: "Benar"}, {Key: "false", Text: "Salah"}}
	}
	q.SetOptions(r.Options)
	q.SetCorrect(r.CorrectAnswers)
}

/* ===================== Attempt ===================== */

type AnswerInput struct {
	Values []string `json:"values"`
	Text   *string  `json:"text"`
}

type SaveAnswersRequest struct {
	Answers map[string]AnswerInput `json:"answers" validate:"required"`
}

func (r SaveAnswersRequest) ToAnswers() model.Answers {
	out := model.Answers{}
	for k, v := range r.Answers {
		out[strings.TrimSpace(k)] = model.AnswerItem{Values: v.Values, Text: v.Text}
	}
	return out
}

type GradeEssayRequest struct {
	QuestionID uuid.UUID `json:"quiz_question_id" validate:"required"`
	Points     *float64  `json:"points" validate:"required"`
	Feedback   *string   `json:"feedback"`
}

// StudentQuestion: soal tanpa kunci jawaban.
type StudentQuestion struct {
	ID          uuid.UUID              `json:"quiz_question_id"`
	Type        model.QuestionType     `json:"quiz_question_type"`
	Text        string                 `json:"quiz_question_text"`
	Points      float64                `json:"quiz_question_points"`
	Options     []model.QuestionOption `json:"quiz_question_options,omitempty"`
	Correct     []string               `json:"quiz_question_correct_answers,omitempty"`
	Explanation *string                `json:"quiz_question_explanation,omitempty"`
}

// ToStudentQuestions: kunci + pembahasan hanya ditampilkan kalau reveal=true (attempt sudah dinilai).
func ToStudentQuestions(qs []model.QuizQuestionModel, reveal bool) []StudentQuestion {
	out := make([]StudentQuestion, 0, len(qs))
	for i := range qs {
		q := qs[i]
		sq := StudentQuestion{
			ID:      q.ID,
			Type:    q.Type,
			Text:    q.Text,
			Points:  q.Points,
			Options: q.OptionList(),
		}
		if reveal {
			sq.Correct = q.CorrectList()
			sq.Explanation = q.Explanation
		}
		out = append(out, sq)
	}
	return out
}

// StripForStudent: sembunyikan is_correct/points selama attempt berjalan.
func StripForStudent(a model.Answers) model.Answers {
	out := model.Answers{}
	for k, v := range a {
		out[k] = model.AnswerItem{Values: v.Values, Text: v.Text}
	}
	return out
}

func windowValid(from, until *time.Time) bool {
	return from == nil || until == nil || until.After(*from)
}

func (r CreateQuizRequest) WindowValid() bool { return windowValid(r.AvailableFrom, r.AvailableUntil) }

// WindowValid memeriksa jendela waktu hasil gabungan nilai lama + baru.
func (r UpdateQuizRequest) WindowValid(cur model.QuizModel) bool {
	from, until := cur.AvailableFrom, cur.AvailableUntil
	if r.AvailableFrom != nil {
		from = r.AvailableFrom
	}
	if r.AvailableUntil != nil {
		until = r.AvailableUntil
	}
	return windowValid(from, until)
}
