package service

import (
	"context"
	"errors"
	"hash/fnv"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	courseService "sekolahku_backend/internals/features/elearning/courses/service"
	gradebook "sekolahku_backend/internals/features/elearning/gradebook/service"
	"sekolahku_backend/internals/features/elearning/quizzes/model"
)

// SubmitGrace: toleransi latensi jaringan setelah ExpiresAt.
const SubmitGrace = 30 * time.Second

var (
	ErrQuizNotAvailable   = errors.New("kuis belum dibuka atau sudah ditutup")
	ErrNotEnrolled        = errors.New("belum terdaftar di kursus kuis ini")
	ErrMaxAttemptsReached = errors.New("batas percobaan kuis sudah habis")
	ErrAttemptClosed      = errors.New("percobaan sudah dikumpulkan")
	ErrTimeUp             = errors.New("waktu pengerjaan sudah habis, silakan kumpulkan")
	ErrNotEssay           = errors.New("soal bukan essay")
	ErrAttemptNotFound    = errors.New("percobaan tidak ditemukan")
	ErrQuestionNotFound   = errors.New("soal tidak ditemukan")
	ErrAttemptNotGradable = errors.New("percobaan belum dikumpulkan")
)

// IsLate: lewat ExpiresAt + SubmitGrace.
func IsLate(expiresAt *time.Time, at time.Time) bool {
	return expiresAt != nil && at.After(expiresAt.Add(SubmitGrace))
}

// CheckAvailability: published + di dalam jendela waktu.
func CheckAvailability(q *model.QuizModel, now time.Time) error {
	if !q.IsPublished || !q.IsOpenAt(now) {
		return ErrQuizNotAvailable
	}
	return nil
}

// ShuffleFor: urutan soal stabil per attempt.
func ShuffleFor(attemptID uuid.UUID, qs []model.QuizQuestionModel) []model.QuizQuestionModel {
	out := append([]model.QuizQuestionModel(nil), qs...)
	h := fnv.New64a()
	_, _ = h.Write(attemptID[:])
	r := rand.New(rand.NewSource(int64(h.Sum64())))
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// MergeAnswers: hanya soal milik kuis; penilaian essay lama dibuang kalau jawabannya berubah.
func MergeAnswers(existing, incoming model.Answers, valid map[string]bool) model.Answers {
	out := model.Answers{}
	for k, v := range existing {
		out[k] = v
	}
	for k, v := range incoming {
		if !valid[k] {
			continue
		}
		out[k] = model.AnswerItem{Values: v.Values, Text: v.Text}
	}
	return out
}

// ApplyResult menulis hasil CalculateScore ke attempt (status + lulus/tidak).
func ApplyResult(a *model.QuizAttemptModel, quiz *model.QuizModel, res ScoreResult) {
	a.EncodeAnswers(res.Answers)
	a.EarnedPoints = res.Earned
	a.TotalPoints = res.Total
	score := res.Score
	a.Score = &score
	if res.NeedsGrading {
		a.Status = model.AttemptNeedsGrading
		a.IsPassed = nil
		return
	}
	a.Status = model.AttemptGraded
	passed := score >= quiz.PassingScore
	a.IsPassed = &passed
}

type QuizAttemptService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewQuizAttemptService(db *gorm.DB) *QuizAttemptService {
	return &QuizAttemptService{DB: db, Now: time.Now}
}

func (s *QuizAttemptService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func loadQuestions(tx *gorm.DB, quizID uuid.UUID) ([]model.QuizQuestionModel, error) {
	var qs []model.QuizQuestionModel
	err := tx.Where("quiz_question_quiz_id = ?", quizID).
		Order("quiz_question_order ASC, quiz_question_created_at ASC").
		Find(&qs).Error
	return qs, err
}

func questionKeys(qs []model.QuizQuestionModel) map[string]bool {
	m := make(map[string]bool, len(qs))
	for _, q := range qs {
		m[q.ID.String()] = true
	}
	return m
}

type startPlan struct {
	Resume  *model.QuizAttemptModel
	Expired []*model.QuizAttemptModel
	NextNo  int
}

// planStart: attempts urut quiz_attempt_no ASC. Attempt in_progress yang masih berjalan dilanjutkan;
// yang lewat waktu masuk Expired untuk ditutup. Attempt yang ditutup tetap dihitung ke MaxAttempts.
func planStart(attempts []model.QuizAttemptModel, quiz *model.QuizModel, now time.Time) (startPlan, error) {
	var p startPlan
	maxNo := 0
	for i := range attempts {
		a := &attempts[i]
		if a.AttemptNo > maxNo {
			maxNo = a.AttemptNo
		}
		if a.Status != model.AttemptInProgress {
			continue
		}
		if !IsLate(a.ExpiresAt, now) {
			p.Resume = a
			return p, nil
		}
		p.Expired = append(p.Expired, a)
	}
	if quiz.MaxAttempts > 0 && len(attempts) >= quiz.MaxAttempts {
		return p, ErrMaxAttemptsReached
	}
	p.NextNo = maxNo + 1
	return p, nil
}

// StartAttempt mengembalikan attempt in_progress yang masih berjalan, atau membuat yang baru.
// Attempt lama yang sudah lewat waktu ditutup dulu (dinilai kalau ada jawaban, expired kalau kosong).
func (s *QuizAttemptService) StartAttempt(ctx context.Context, quiz *model.QuizModel, studentID uuid.UUID) (*model.QuizAttemptModel, bool, error) {
	now := s.now()
	if err := CheckAvailability(quiz, now); err != nil {
		return nil, false, err
	}
	enrolled, err := courseService.IsEnrolled(ctx, s.DB, quiz.CourseID, studentID)
	if err != nil {
		return nil, false, err
	}
	if !enrolled {
		return nil, false, ErrNotEnrolled
	}

	var (
		out      *model.QuizAttemptModel
		created  bool
		startErr error
	)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var attempts []model.QuizAttemptModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("quiz_attempt_quiz_id = ? AND quiz_attempt_student_id = ?", quiz.ID, studentID).
			Order("quiz_attempt_no ASC").
			Find(&attempts).Error; err != nil {
			return err
		}

		plan, perr := planStart(attempts, quiz, now)
		for _, a := range plan.Expired {
			if err := s.closeExpired(ctx, tx, quiz, a, now); err != nil {
				return err
			}
		}
		if perr != nil {
			// attempt yang ditutup tetap tersimpan
			startErr = perr
			return nil
		}
		if plan.Resume != nil {
			out = plan.Resume
			return nil
		}

		row := model.QuizAttemptModel{
			QuizID:     quiz.ID,
			InstansiID: quiz.InstansiID,
			StudentID:  studentID,
			AttemptNo:  plan.NextNo,
			Status:     model.AttemptInProgress,
			StartedAt:  now,
		}
		if quiz.TimeLimitMinutes != nil && *quiz.TimeLimitMinutes > 0 {
			exp := now.Add(time.Duration(*quiz.TimeLimitMinutes) * time.Minute)
			row.ExpiresAt = &exp
		}
		row.EncodeAnswers(nil)
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		out, created = &row, true
		return nil
	})
	if err == nil {
		err = startErr
	}
	if err != nil {
		return nil, false, err
	}
	if created {
		log.Printf("[QuizAttemptService] StartAttempt quiz=%s student=%s no=%d", quiz.ID, studentID, out.AttemptNo)
	}
	return out, created, nil
}

// closeExpired: attempt yang ditinggal lewat batas waktu.
func (s *QuizAttemptService) closeExpired(ctx context.Context, tx *gorm.DB, quiz *model.QuizModel, a *model.QuizAttemptModel, now time.Time) error {
	if len(a.DecodeAnswers()) == 0 {
		zero := 0.0
		passed := false
		log.Printf("[QuizAttemptService] attempt %s kosong & lewat waktu → expired", a.ID)
		return tx.Model(a).Updates(map[string]any{
			"quiz_attempt_status":       model.AttemptExpired,
			"quiz_attempt_submitted_at": now,
			"quiz_attempt_score":        zero,
			"quiz_attempt_is_passed":    passed,
			"quiz_attempt_is_late":      true,
		}).Error
	}
	return s.finalize(ctx, tx, quiz, a, now)
}

// finalize menilai attempt, menyimpan, lalu sinkron gradebook.
func (s *QuizAttemptService) finalize(ctx context.Context, tx *gorm.DB, quiz *model.QuizModel, a *model.QuizAttemptModel, at time.Time) error {
	questions, err := loadQuestions(tx, quiz.ID)
	if err != nil {
		return err
	}
	res := CalculateScore(questions, a.DecodeAnswers())
	ApplyResult(a, quiz, res)
	a.SubmittedAt = &at
	a.IsLate = IsLate(a.ExpiresAt, at)

	if err := tx.Model(a).Select(
		"quiz_attempt_status", "quiz_attempt_answers", "quiz_attempt_score",
		"quiz_attempt_earned_points", "quiz_attempt_total_points",
		"quiz_attempt_is_passed", "quiz_attempt_submitted_at", "quiz_attempt_is_late",
	).Updates(a).Error; err != nil {
		return err
	}

	log.Printf("[QuizAttemptService] attempt %s dinilai: status=%s earned=%.2f total=%.2f score=%.2f late=%v",
		a.ID, a.Status, a.EarnedPoints, a.TotalPoints, *a.Score, a.IsLate)

	return gradebook.SyncFromQuiz(ctx, tx, quizRef(quiz), a.StudentID)
}

func quizRef(q *model.QuizModel) gradebook.QuizRef {
	return gradebook.QuizRef{
		ID:            q.ID,
		InstansiID:    q.InstansiID,
		CourseID:      q.CourseID,
		Title:         q.Title,
		GradingPolicy: q.GradingPolicy,
	}
}

func (s *QuizAttemptService) lockOwnAttempt(tx *gorm.DB, attemptID, studentID uuid.UUID) (*model.QuizAttemptModel, error) {
	var a model.QuizAttemptModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&a, "quiz_attempt_id = ? AND quiz_attempt_student_id = ?", attemptID, studentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAttemptNotFound
	}
	return &a, err
}

func loadQuiz(tx *gorm.DB, id uuid.UUID) (*model.QuizModel, error) {
	var q model.QuizModel
	if err := tx.Unscoped().First(&q, "quiz_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// SaveAnswers: autosave selama attempt in_progress dan belum lewat waktu.
func (s *QuizAttemptService) SaveAnswers(ctx context.Context, attemptID, studentID uuid.UUID, incoming model.Answers) (*model.QuizAttemptModel, error) {
	var out *model.QuizAttemptModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := s.lockOwnAttempt(tx, attemptID, studentID)
		if err != nil {
			return err
		}
		if a.Status != model.AttemptInProgress {
			return ErrAttemptClosed
		}
		if IsLate(a.ExpiresAt, s.now()) {
			return ErrTimeUp
		}
		questions, err := loadQuestions(tx, a.QuizID)
		if err != nil {
			return err
		}
		a.EncodeAnswers(MergeAnswers(a.DecodeAnswers(), incoming, questionKeys(questions)))
		if err := tx.Model(a).Update("quiz_attempt_answers", a.Answers).Error; err != nil {
			return err
		}
		out = a
		return nil
	})
	return out, err
}

// SubmitAttempt: jawaban terakhir (opsional) digabung lalu dinilai.
// Pengumpulan setelah batas waktu tetap dinilai dengan IsLate=true.
func (s *QuizAttemptService) SubmitAttempt(ctx context.Context, attemptID, studentID uuid.UUID, incoming model.Answers) (*model.QuizAttemptModel, error) {
	var out *model.QuizAttemptModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := s.lockOwnAttempt(tx, attemptID, studentID)
		if err != nil {
			return err
		}
		if a.Status != model.AttemptInProgress {
			return ErrAttemptClosed
		}
		quiz, err := loadQuiz(tx, a.QuizID)
		if err != nil {
			return err
		}
		if len(incoming) > 0 {
			questions, err := loadQuestions(tx, a.QuizID)
			if err != nil {
				return err
			}
			a.EncodeAnswers(MergeAnswers(a.DecodeAnswers(), incoming, questionKeys(questions)))
		}
		if err := s.finalize(ctx, tx, quiz, a, s.now()); err != nil {
			return err
		}
		out = a
		return nil
	})
	return out, err
}

// GradeEssay: guru memberi poin essay (di-clamp ke [0, points]), lalu attempt dinilai ulang.
func (s *QuizAttemptService) GradeEssay(ctx context.Context, attemptID, questionID uuid.UUID, points float64, feedback *string) (*model.QuizAttemptModel, error) {
	var out *model.QuizAttemptModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a model.QuizAttemptModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&a, "quiz_attempt_id = ?", attemptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAttemptNotFound
			}
			return err
		}
		if a.Status == model.AttemptInProgress || a.Status == model.AttemptExpired {
			return ErrAttemptNotGradable
		}

		var q model.QuizQuestionModel
		if err := tx.First(&q, "quiz_question_id = ? AND quiz_question_quiz_id = ?", questionID, a.QuizID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}
		if !q.IsEssay() {
			return ErrNotEssay
		}
		quiz, err := loadQuiz(tx, a.QuizID)
		if err != nil {
			return err
		}

		answers := a.DecodeAnswers()
		item := answers[q.ID.String()]
		pts := clampPoints(points, q.Points)
		item.PointsEarned = &pts
		item.Graded = true
		item.Feedback = feedback
		answers[q.ID.String()] = item

		questions, err := loadQuestions(tx, a.QuizID)
		if err != nil {
			return err
		}
		ApplyResult(&a, quiz, CalculateScore(questions, answers))
		if err := tx.Model(&a).Select(
			"quiz_attempt_status", "quiz_attempt_answers", "quiz_attempt_score",
			"quiz_attempt_earned_points", "quiz_attempt_total_points", "quiz_attempt_is_passed",
		).Updates(&a).Error; err != nil {
			return err
		}
		log.Printf("[QuizAttemptService] GradeEssay attempt=%s question=%s points=%.2f status=%s", a.ID, q.ID, pts, a.Status)

		if err := gradebook.SyncFromQuiz(ctx, tx, quizRef(quiz), a.StudentID); err != nil {
			return err
		}
		out = &a
		return nil
	})
	return out, err
}

// ResyncQuiz: dipanggil saat GradingPolicy berubah.
func (s *QuizAttemptService) ResyncQuiz(ctx context.Context, quiz *model.QuizModel) error {
	var students []uuid.UUID
	if err := s.DB.WithContext(ctx).Model(&model.QuizAttemptModel{}).
		Where("quiz_attempt_quiz_id = ?", quiz.ID).
		Distinct().Pluck("quiz_attempt_student_id", &students).Error; err != nil {
		return err
	}
	for _, sid := range students {
		if err := gradebook.SyncFromQuiz(ctx, s.DB, quizRef(quiz), sid); err != nil {
			return err
		}
	}
	return nil
}
