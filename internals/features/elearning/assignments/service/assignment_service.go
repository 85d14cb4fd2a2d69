package service

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/features/elearning/assignments/model"
	courseService "sekolahku_backend/internals/features/elearning/courses/service"
	gradebook "sekolahku_backend/internals/features/elearning/gradebook/service"
)

var (
	ErrAssignmentClosed = errors.New("tugas belum dibuka")
	ErrPastDue          = errors.New("batas waktu pengumpulan sudah lewat")
	ErrAlreadyGraded    = errors.New("tugas sudah dinilai, tidak bisa dikumpulkan ulang")
	ErrNotEnrolled      = errors.New("belum terdaftar di kursus tugas ini")
	ErrEmptySubmission  = errors.New("isi jawaban atau lampirkan file")
	ErrNotSubmitted     = errors.New("pengumpulan tidak ditemukan")
)

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// CheckSubmit: boleh kumpul? return isLate.
func CheckSubmit(a *model.AssignmentModel, existing *model.AssignmentSubmissionModel, now time.Time) (bool, error) {
	if !a.IsPublished {
		return false, ErrAssignmentClosed
	}
	if existing != nil && existing.Status == model.SubmissionGraded {
		return false, ErrAlreadyGraded
	}
	// revisi atas pengumpulan yang dikembalikan: status telat ikut yang pertama
	if existing != nil && existing.Status == model.SubmissionReturned {
		return existing.IsLate, nil
	}
	late := a.DueAt != nil && now.After(*a.DueAt)
	if late && !a.AllowLate {
		return true, ErrPastDue
	}
	return late, nil
}

// ComputeFinalScore: score di-clamp ke [0,max]; telat → dipotong penalty%.
func ComputeFinalScore(score, maxPoints, penaltyPercent float64, late bool) (clamped, final float64) {
	clamped = score
	if clamped < 0 {
		clamped = 0
	}
	if maxPoints >= 0 && clamped > maxPoints {
		clamped = maxPoints
	}
	final = clamped
	if late && penaltyPercent > 0 {
		p := penaltyPercent
		if p > 100 {
			p = 100
		}
		final = clamped * (1 - p/100)
	}
	return round2(clamped), round2(final)
}

type SubmitInput struct {
	Content *string
	FileURL *string
}

type AssignmentService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{DB: db, Now: time.Now}
}

// Submit membuat atau mengganti pengumpulan. Return URL file lama yang tergantikan.
func (s *AssignmentService) Submit(ctx context.Context, a *model.AssignmentModel, studentID uuid.UUID, in SubmitInput) (*model.AssignmentSubmissionModel, string, error) {
	if (in.Content == nil || *in.Content == "") && in.FileURL == nil {
		return nil, "", ErrEmptySubmission
	}
	enrolled, err := courseService.IsEnrolled(ctx, s.DB, a.CourseID, studentID)
	if err != nil {
		return nil, "", err
	}
	if !enrolled {
		return nil, "", ErrNotEnrolled
	}

	now := s.Now()
	var out model.AssignmentSubmissionModel
	oldFile := ""
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing *model.AssignmentSubmissionModel
		var row model.AssignmentSubmissionModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("assignment_submission_assignment_id = ? AND assignment_submission_student_id = ?", a.ID, studentID).
			First(&row).Error
		switch {
		case err == nil:
			existing = &row
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		late, err := CheckSubmit(a, existing, now)
		if err != nil {
			return err
		}

		if existing == nil {
			out = model.AssignmentSubmissionModel{
				AssignmentID: a.ID,
				InstansiID:   a.InstansiID,
				StudentID:    studentID,
				Content:      in.Content,
				FileURL:      in.FileURL,
				Status:       model.SubmissionSubmitted,
				SubmittedAt:  now,
				IsLate:       late,
			}
			return tx.Create(&out).Error
		}

		fileURL := existing.FileURL
		if in.FileURL != nil {
			if existing.FileURL != nil && *existing.FileURL != *in.FileURL {
				oldFile = *existing.FileURL
			}
			fileURL = in.FileURL
		}
		existing.Content = in.Content
		existing.FileURL = fileURL
		existing.Status = model.SubmissionSubmitted
		existing.SubmittedAt = now
		existing.IsLate = late
		existing.Score, existing.FinalScore, existing.GradedAt, existing.GradedBy = nil, nil, nil, nil
		if err := tx.Model(existing).Select(
			"assignment_submission_content", "assignment_submission_file_url",
			"assignment_submission_status", "assignment_submission_submitted_at",
			"assignment_submission_is_late", "assignment_submission_score",
			"assignment_submission_final_score", "assignment_submission_graded_at",
			"assignment_submission_graded_by",
		).Updates(existing).Error; err != nil {
			return err
		}
		out = *existing
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	log.Printf("[AssignmentService] submit assignment=%s student=%s late=%v", a.ID, studentID, out.IsLate)
	return &out, oldFile, nil
}

// Grade: clamp + penalti telat, lalu sinkron gradebook.
func (s *AssignmentService) Grade(ctx context.Context, a *model.AssignmentModel, submissionID, graderID uuid.UUID, score float64, feedback *string) (*model.AssignmentSubmissionModel, error) {
	var out model.AssignmentSubmissionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&out, "assignment_submission_id = ? AND assignment_submission_assignment_id = ?", submissionID, a.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotSubmitted
			}
			return err
		}

		clamped, final := ComputeFinalScore(score, a.MaxPoints, a.LatePenaltyPercent, out.IsLate)
		now := s.Now()
		out.Score = &clamped
		out.FinalScore = &final
		out.Feedback = feedback
		out.Status = model.SubmissionGraded
		out.GradedAt = &now
		out.GradedBy = &graderID
		if err := tx.Model(&out).Select(
			"assignment_submission_score", "assignment_submission_final_score",
			"assignment_submission_feedback", "assignment_submission_status",
			"assignment_submission_graded_at", "assignment_submission_graded_by",
		).Updates(&out).Error; err != nil {
			return err
		}

		return gradebook.SyncFromAssignment(ctx, tx, gradebook.AssignmentGrade{
			AssignmentID: a.ID,
			InstansiID:   a.InstansiID,
			CourseID:     a.CourseID,
			StudentID:    out.StudentID,
			Title:        a.Title,
			FinalScore:   final,
			MaxPoints:    a.MaxPoints,
			GradedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[AssignmentService] grade submission=%s score=%.2f final=%.2f late=%v", out.ID, *out.Score, *out.FinalScore, out.IsLate)
	return &out, nil
}

// Return: dikembalikan untuk revisi; nilai di gradebook dicabut sampai dinilai lagi.
func (s *AssignmentService) Return(ctx context.Context, a *model.AssignmentModel, submissionID uuid.UUID, feedback *string) (*model.AssignmentSubmissionModel, error) {
	var out model.AssignmentSubmissionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&out, "assignment_submission_id = ? AND assignment_submission_assignment_id = ?", submissionID, a.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotSubmitted
			}
			return err
		}
		out.Status = model.SubmissionReturned
		if feedback != nil {
			out.Feedback = feedback
		}
		if err := tx.Model(&out).Select("assignment_submission_status", "assignment_submission_feedback").
			Updates(&out).Error; err != nil {
			return err
		}
		return gradebook.RemoveAssignment(ctx, tx, a.ID, out.StudentID)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
