package database

import (
	"log"

	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	assignmentModel "sekolahku_backend/internals/features/elearning/assignments/model"
	courseModel "sekolahku_backend/internals/features/elearning/courses/model"
	forumModel "sekolahku_backend/internals/features/elearning/forums/model"
	gradebookModel "sekolahku_backend/internals/features/elearning/gradebook/model"
	quizModel "sekolahku_backend/internals/features/elearning/quizzes/model"
	instansiModel "sekolahku_backend/internals/features/instansi/model"
	libraryModel "sekolahku_backend/internals/features/library/model"
	contactModel "sekolahku_backend/internals/features/public_pages/contacts/model"
	downloadModel "sekolahku_backend/internals/features/public_pages/downloads/model"
	galleryModel "sekolahku_backend/internals/features/public_pages/galleries/model"
	newsModel "sekolahku_backend/internals/features/public_pages/news/model"
	ppdbModel "sekolahku_backend/internals/features/public_pages/ppdb/model"
	authModel "sekolahku_backend/internals/features/users/auth/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// Models: urutan mengikuti FK (instansi → users → sisanya).
func Models() []any {
	return []any{
		&instansiModel.InstansiModel{},
		&userModel.UserModel{},
		&authModel.RefreshTokenModel{},
		&helperAuth.TokenBlacklist{},

		&courseModel.CourseModel{},
		&courseModel.CourseLessonModel{},
		&courseModel.CourseEnrollmentModel{},
		&courseModel.LessonCompletionModel{},
		&quizModel.QuizModel{},
		&quizModel.QuizQuestionModel{},
		&quizModel.QuizAttemptModel{},
		&assignmentModel.AssignmentModel{},
		&assignmentModel.AssignmentSubmissionModel{},
		&forumModel.ForumModel{},
		&forumModel.ForumThreadModel{},
		&forumModel.ForumPostModel{},
		&gradebookModel.GradeRecordModel{},

		&libraryModel.LibraryBookModel{},
		&libraryModel.ReadingProgressModel{},
		&libraryModel.BookmarkModel{},

		&newsModel.NewsModel{},
		&galleryModel.GalleryModel{},
		&galleryModel.GalleryItemModel{},
		&contactModel.ContactMessageModel{},
		&ppdbModel.PPDBRegistrationModel{},
		&ppdbModel.PPDBSequenceModel{},
		&downloadModel.DownloadModel{},
	}
}

// AutoMigrate hanya jalan kalau DB_AUTOMIGRATE=true (dev/staging).
func AutoMigrate(db *gorm.DB) error {
	if !configs.GetEnvBool("DB_AUTOMIGRATE", false) {
		return nil
	}
	log.Println("[MIGRATE] AutoMigrate dimulai...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Printf("[MIGRATE] extension pgcrypto: %v", err)
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	log.Printf("[MIGRATE] %d tabel siap", len(Models()))
	return nil
}
