package service

import (
	"math"
	"strings"

	"sekolahku_backend/internals/features/elearning/quizzes/model"
)

type ScoreResult struct {
	Earned       float64
	Total        float64
	Score        float64 // persen 0..100, 2 desimal
	NeedsGrading bool    // masih ada essay yang belum dinilai
	Answers      model.Answers
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func firstAnswer(a model.AnswerItem) string {
	for _, v := range a.Values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	if a.Text != nil {
		return *a.Text
	}
	return ""
}

func normSet(list []string) map[string]struct{} {
	out := make(map[string]struct{}, len(list))
	for _, v := range list {
		if k := norm(v); k != "" {
			out[k] = struct{}{}
		}
	}
	return out
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// IsCorrect untuk soal objektif. Essay selalu false (dinilai manual).
func IsCorrect(q model.QuizQuestionModel, a model.AnswerItem) bool {
	correct := q.CorrectList()
	switch q.Type {
	case model.QuestionSingle, model.QuestionTrueFalse:
		ans := norm(firstAnswer(a))
		return ans != "" && len(correct) > 0 && ans == norm(correct[0])
	case model.QuestionMultiple:
		return sameSet(normSet(a.Values), normSet(correct))
	case model.QuestionShortAnswer:
		ans := norm(firstAnswer(a))
		if ans == "" {
			return false
		}
		for _, c := range correct {
			if ans == norm(c) {
				return true
			}
		}
	}
	return false
}

// CalculateScore: jumlah bobot soal yang benar / total bobot.
// Nilai essay yang sudah dinilai manual dipertahankan.
func CalculateScore(questions []model.QuizQuestionModel, answers model.Answers) ScoreResult {
	res := ScoreResult{Answers: model.Answers{}}

	for _, q := range questions {
		key := q.ID.String()
		a := answers[key]
		res.Total += q.Points

		if q.IsEssay() {
			if a.Graded && a.PointsEarned != nil {
				pts := clampPoints(*a.PointsEarned, q.Points)
				a.PointsEarned = &pts
				res.Earned += pts
			} else {
				a.Graded = false
				a.PointsEarned = nil
				res.NeedsGrading = true
			}
			res.Answers[key] = a
			continue
		}

		ok := IsCorrect(q, a)
		pts := 0.0
		if ok {
			pts = q.Points
		}
		a.IsCorrect = &ok
		a.PointsEarned = &pts
		res.Earned += pts
		res.Answers[key] = a
	}

	// jawaban untuk soal yang sudah dihapus ikut disimpan apa adanya
	for k, a := range answers {
		if _, ok := res.Answers[k]; !ok {
			res.Answers[k] = a
		}
	}

	if res.Total > 0 {
		res.Score = round2(res.Earned / res.Total * 100)
	}
	res.Earned = round2(res.Earned)
	res.Total = round2(res.Total)
	return res
}

func clampPoints(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
