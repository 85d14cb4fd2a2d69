package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/features/elearning/gradebook/model"
)

const (
	PolicyHighest = "highest"
	PolicyLatest  = "latest"
	PolicyAverage = "average"
)

func IsValidPolicy(p string) bool {
	return p == PolicyHighest || p == PolicyLatest || p == PolicyAverage
}

func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// GradedAttempt: ringkasan attempt yang sudah final (status graded).
type GradedAttempt struct {
	AttemptNo    int       `gorm:"column:quiz_attempt_no"`
	EarnedPoints float64   `gorm:"column:quiz_attempt_earned_points"`
	TotalPoints  float64   `gorm:"column:quiz_attempt_total_points"`
	Score        float64   `gorm:"column:quiz_attempt_score"`
	SubmittedAt  time.Time `gorm:"column:quiz_attempt_submitted_at"`
}

type PolicyResult struct {
	Score    float64
	MaxScore float64
	Percent  float64
	GradedAt time.Time
}

// ApplyPolicy memilih/merata-rata attempt. ok=false kalau tidak ada attempt.
func ApplyPolicy(policy string, attempts []GradedAttempt) (PolicyResult, bool) {
	if len(attempts) == 0 {
		return PolicyResult{}, false
	}
	list := append([]GradedAttempt(nil), attempts...)
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].SubmittedAt.Equal(list[j].SubmittedAt) {
			return list[i].SubmittedAt.Before(list[j].SubmittedAt)
		}
		return list[i].AttemptNo < list[j].AttemptNo
	})
	last := list[len(list)-1]

	switch policy {
	case PolicyLatest:
		return PolicyResult{last.EarnedPoints, last.TotalPoints, Round2(last.Score), last.SubmittedAt}, true
	case PolicyAverage:
		var earned, total, pct float64
		for _, a := range list {
			earned += a.EarnedPoints
			total += a.TotalPoints
			pct += a.Score
		}
		n := float64(len(list))
		return PolicyResult{Round2(earned / n), Round2(total / n), Round2(pct / n), last.SubmittedAt}, true
	default: // highest; seri → attempt terakhir
		best := list[0]
		for _, a := range list[1:] {
			if a.Score >= best.Score {
				best = a
			}
		}
		return PolicyResult{best.EarnedPoints, best.TotalPoints, Round2(best.Score), best.SubmittedAt}, true
	}
}

// Percent: score/max*100 dibulatkan 2 desimal, max 0 → 0.
func Percent(score, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return Round2(score / max * 100)
}

/* ===================== Upsert ===================== */

func Upsert(ctx context.Context, tx *gorm.DB, rec *model.GradeRecordModel) error {
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "grade_record_source_type"},
			{Name: "grade_record_source_id"},
			{Name: "grade_record_student_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"grade_record_title",
			"grade_record_score",
			"grade_record_max_score",
			"grade_record_percent",
			"grade_record_graded_at",
			"grade_record_updated_at",
		}),
	}).Create(rec).Error
}

func remove(ctx context.Context, tx *gorm.DB, sourceType string, sourceID, studentID uuid.UUID) error {
	return tx.WithContext(ctx).
		Where("grade_record_source_type = ? AND grade_record_source_id = ? AND grade_record_student_id = ?",
			sourceType, sourceID, studentID).
		Delete(&model.GradeRecordModel{}).Error
}

type QuizRef struct {
	ID            uuid.UUID
	InstansiID    uuid.UUID
	CourseID      uuid.UUID
	Title         string
	GradingPolicy string
}

// SyncFromQuiz: terapkan GradingPolicy ke attempt graded siswa. Tanpa attempt graded → record dihapus.
func SyncFromQuiz(ctx context.Context, tx *gorm.DB, quiz QuizRef, studentID uuid.UUID) error {
	var attempts []GradedAttempt
	if err := tx.WithContext(ctx).Table("quiz_attempts").
		Select("quiz_attempt_no, quiz_attempt_earned_points, quiz_attempt_total_points, quiz_attempt_score, quiz_attempt_submitted_at").
		Where("quiz_attempt_quiz_id = ? AND quiz_attempt_student_id = ? AND quiz_attempt_status = ?", quiz.ID, studentID, "graded").
		Where("quiz_attempt_score IS NOT NULL AND quiz_attempt_submitted_at IS NOT NULL").
		Scan(&attempts).Error; err != nil {
		return err
	}

	res, ok := ApplyPolicy(quiz.GradingPolicy, attempts)
	if !ok {
		return remove(ctx, tx, model.SourceQuiz, quiz.ID, studentID)
	}
	return Upsert(ctx, tx, &model.GradeRecordModel{
		InstansiID: quiz.InstansiID,
		CourseID:   quiz.CourseID,
		StudentID:  studentID,
		SourceType: model.SourceQuiz,
		SourceID:   quiz.ID,
		Title:      quiz.Title,
		Score:      res.Score,
		MaxScore:   res.MaxScore,
		Percent:    res.Percent,
		GradedAt:   res.GradedAt,
	})
}

type AssignmentGrade struct {
	AssignmentID uuid.UUID
	InstansiID   uuid.UUID
	CourseID     uuid.UUID
	StudentID    uuid.UUID
	Title        string
	FinalScore   float64
	MaxPoints    float64
	GradedAt     time.Time
}

func SyncFromAssignment(ctx context.Context, tx *gorm.DB, g AssignmentGrade) error {
	return Upsert(ctx, tx, &model.GradeRecordModel{
		InstansiID: g.InstansiID,
		CourseID:   g.CourseID,
		StudentID:  g.StudentID,
		SourceType: model.SourceAssignment,
		SourceID:   g.AssignmentID,
		Title:      g.Title,
		Score:      Round2(g.FinalScore),
		MaxScore:   g.MaxPoints,
		Percent:    Percent(g.FinalScore, g.MaxPoints),
		GradedAt:   g.GradedAt,
	})
}

// RemoveAssignment: dipakai saat submission dikembalikan (return) ke siswa.
func RemoveAssignment(ctx context.Context, tx *gorm.DB, assignmentID, studentID uuid.UUID) error {
	return remove(ctx, tx, model.SourceAssignment, assignmentID, studentID)
}

/* ===================== Summary ===================== */

type StudentSummary struct {
	StudentID      uuid.UUID `json:"student_id"`
	Items          int       `json:"items"`
	AveragePercent float64   `json:"average_percent"`
	QuizAverage    *float64  `json:"quiz_average,omitempty"`
	TaskAverage    *float64  `json:"assignment_average,omitempty"`
}

// Summarize: rata-rata persen per siswa, urut dari rata-rata tertinggi.
func Summarize(records []model.GradeRecordModel) []StudentSummary {
	type acc struct {
		n, nq, na       int
		sum, sumq, suma float64
	}
	byStudent := map[uuid.UUID]*acc{}
	order := []uuid.UUID{}
	for _, r := range records {
		a, ok := byStudent[r.StudentID]
		if !ok {
			a = &acc{}
			byStudent[r.StudentID] = a
			order = append(order, r.StudentID)
		}
		a.n++
		a.sum += r.Percent
		switch r.SourceType {
		case model.SourceQuiz:
			a.nq++
			a.sumq += r.Percent
		case model.SourceAssignment:
			a.na++
			a.suma += r.Percent
		}
	}

	out := make([]StudentSummary, 0, len(order))
	for _, id := range order {
		a := byStudent[id]
		s := StudentSummary{StudentID: id, Items: a.n, AveragePercent: Round2(a.sum / float64(a.n))}
		if a.nq > 0 {
			v := Round2(a.sumq / float64(a.nq))
			s.QuizAverage = &v
		}
		if a.na > 0 {
			v := Round2(a.suma / float64(a.na))
			s.TaskAverage = &v
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AveragePercent > out[j].AveragePercent })
	return out
}
