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

	"sekolahku_backend/internals/features/elearning/courses/model"
)

var (
	ErrCourseNotPublished = errors.New("kursus belum dipublikasikan")
	ErrNotEnrolled        = errors.New("belum terdaftar di kursus ini")
	ErrLessonNotAvailable = errors.New("materi tidak tersedia")
)

// ComputePercent: round(completed*100/total), total 0 → 0, dibatasi 0..100.
func ComputePercent(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}

// ApplyProgress mengisi angka progres + status ke enrollment (tanpa DB).
// Enrollment dropped tidak diubah statusnya.
func ApplyProgress(e *model.CourseEnrollmentModel, completed, total int, now time.Time) {
	e.CompletedLessons = completed
	e.TotalLessons = total
	e.ProgressPercent = ComputePercent(completed, total)

	if e.Status == model.EnrollmentDropped {
		return
	}
	if e.ProgressPercent >= 100 {
		e.Status = model.EnrollmentCompleted
		if e.CompletedAt == nil {
			t := now
			e.CompletedAt = &t
		}
		return
	}
	e.Status = model.EnrollmentActive
	e.CompletedAt = nil
}

// UpdateProgress menghitung ulang satu enrollment dari lesson yang masih published.
func UpdateProgress(ctx context.Context, tx *gorm.DB, enrollmentID uuid.UUID) (*model.CourseEnrollmentModel, error) {
	var e model.CourseEnrollmentModel
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&e, "course_enrollment_id = ?", enrollmentID).Error; err != nil {
		return nil, err
	}

	var total int64
	if err := tx.WithContext(ctx).Model(&model.CourseLessonModel{}).
		Where("course_lesson_course_id = ? AND course_lesson_is_published = TRUE AND course_lesson_deleted_at IS NULL", e.CourseID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var completed int64
	if err := tx.WithContext(ctx).Table("lesson_completions lc").
		Joins("JOIN course_lessons l ON l.course_lesson_id = lc.lesson_completion_lesson_id").
		Where("lc.lesson_completion_enrollment_id = ?", e.ID).
		Where("l.course_lesson_is_published = TRUE AND l.course_lesson_deleted_at IS NULL").
		Count(&completed).Error; err != nil {
		return nil, err
	}

	ApplyProgress(&e, int(completed), int(total), time.Now())
	if err := tx.WithContext(ctx).Model(&e).Updates(map[string]any{
		"course_enrollment_completed_lessons": e.CompletedLessons,
		"course_enrollment_total_lessons":     e.TotalLessons,
		"course_enrollment_progress_percent":  e.ProgressPercent,
		"course_enrollment_status":            e.Status,
		"course_enrollment_completed_at":      e.CompletedAt,
	}).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// RecalculateCourse dipanggil setelah lesson ditambah/di-publish/dihapus.
func RecalculateCourse(ctx context.Context, db *gorm.DB, courseID uuid.UUID) error {
	var ids []uuid.UUID
	if err := db.WithContext(ctx).Model(&model.CourseEnrollmentModel{}).
		Where("course_enrollment_course_id = ? AND course_enrollment_status <> ?", courseID, model.EnrollmentDropped).
		Pluck("course_enrollment_id", &ids).Error; err != nil {
		return err
	}
	for _, id := range ids {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			_, err := UpdateProgress(ctx, tx, id)
			return err
		})
		if err != nil {
			log.Printf("[CourseProgress] recalc enrollment %s gagal: %v", id, err)
			return err
		}
	}
	return nil
}

/* ===================== Enrollment ===================== */

// planEnroll: inserted = baris enrollment baru dibuat oleh request ini.
// Counter kursus naik hanya untuk baris baru atau reaktivasi dropped.
func planEnroll(inserted bool, status string) (reactivate, bump bool) {
	if inserted {
		return false, true
	}
	if status == model.EnrollmentDropped {
		return true, true
	}
	return false, false
}

// Enroll idempoten: baris baru / reaktivasi dropped menambah counter kursus.
func Enroll(ctx context.Context, db *gorm.DB, course *model.CourseModel, studentID uuid.UUID) (*model.CourseEnrollmentModel, bool, error) {
	if course.Status != model.CourseStatusPublished {
		return nil, false, ErrCourseNotPublished
	}

	var out *model.CourseEnrollmentModel
	created := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := model.CourseEnrollmentModel{
			CourseID:   course.ID,
			InstansiID: course.InstansiID,
			StudentID:  studentID,
			Status:     model.EnrollmentActive,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if res.Error != nil {
			return res.Error
		}

		var e model.CourseEnrollmentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("course_enrollment_course_id = ? AND course_enrollment_student_id = ?", course.ID, studentID).
			First(&e).Error; err != nil {
			return err
		}
		reactivate, bump := planEnroll(res.RowsAffected == 1, e.Status)
		if reactivate {
			if err := tx.Model(&e).Update("course_enrollment_status", model.EnrollmentActive).Error; err != nil {
				return err
			}
		}
		if bump {
			if err := tx.Model(&model.CourseModel{}).
				Where("course_id = ?", course.ID).
				UpdateColumn("course_enrollment_count", gorm.Expr("course_enrollment_count + 1")).Error; err != nil {
				return err
			}
		}

		updated, err := UpdateProgress(ctx, tx, e.ID)
		if err != nil {
			return err
		}
		out, created = updated, bump
		return nil
	})
	return out, created, err
}

// Unenroll: status dropped, counter dikurangi (tidak pernah < 0).
func Unenroll(ctx context.Context, db *gorm.DB, courseID, studentID uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e model.CourseEnrollmentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("course_enrollment_course_id = ? AND course_enrollment_student_id = ?", courseID, studentID).
			First(&e).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotEnrolled
			}
			return err
		}
		if e.Status == model.EnrollmentDropped {
			return nil
		}
		if err := tx.Model(&e).Update("course_enrollment_status", model.EnrollmentDropped).Error; err != nil {
			return err
		}
		return tx.Model(&model.CourseModel{}).
			Where("course_id = ?", courseID).
			UpdateColumn("course_enrollment_count", gorm.Expr("GREATEST(course_enrollment_count - 1, 0)")).Error
	})
}

// CompleteLesson idempoten, lalu UpdateProgress.
func CompleteLesson(ctx context.Context, db *gorm.DB, courseID, lessonID, studentID uuid.UUID) (*model.CourseEnrollmentModel, error) {
	var out *model.CourseEnrollmentModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := activeEnrollment(tx, courseID, studentID)
		if err != nil {
			return err
		}

		var lesson model.CourseLessonModel
		if err := tx.Where("course_lesson_id = ? AND course_lesson_course_id = ? AND course_lesson_is_published = TRUE", lessonID, courseID).
			First(&lesson).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLessonNotAvailable
			}
			return err
		}

		now := time.Now()
		lc := model.LessonCompletionModel{EnrollmentID: e.ID, LessonID: lesson.ID, CompletedAt: now}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&lc).Error; err != nil {
			return err
		}
		if err := tx.Model(e).Update("course_enrollment_last_accessed_at", now).Error; err != nil {
			return err
		}

		out, err = UpdateProgress(ctx, tx, e.ID)
		return err
	})
	return out, err
}

func activeEnrollment(tx *gorm.DB, courseID, studentID uuid.UUID) (*model.CourseEnrollmentModel, error) {
	var e model.CourseEnrollmentModel
	err := tx.Where("course_enrollment_course_id = ? AND course_enrollment_student_id = ? AND course_enrollment_status <> ?",
		courseID, studentID, model.EnrollmentDropped).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotEnrolled
	}
	return &e, err
}

// IsEnrolled dipakai modul kuis/tugas/forum.
func IsEnrolled(ctx context.Context, db *gorm.DB, courseID, studentID uuid.UUID) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&model.CourseEnrollmentModel{}).
		Where("course_enrollment_course_id = ? AND course_enrollment_student_id = ? AND course_enrollment_status <> ?",
			courseID, studentID, model.EnrollmentDropped).
		Count(&n).Error
	return n > 0, err
}
