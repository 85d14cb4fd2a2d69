package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/features/elearning/forums/model"
)

var (
	ErrThreadLocked   = errors.New("thread dikunci, tidak bisa dibalas")
	ErrForumInactive  = errors.New("forum sedang nonaktif")
	ErrParentMismatch = errors.New("balasan induk tidak ada di thread ini")
	ErrNotPostOwner   = errors.New("hanya penulis atau guru/admin yang boleh mengubah")
)

// CanReply: forum aktif dan thread tidak dikunci.
func CanReply(forum *model.ForumModel, thread *model.ForumThreadModel) error {
	if !forum.IsActive {
		return ErrForumInactive
	}
	if thread.IsLocked {
		return ErrThreadLocked
	}
	return nil
}

// CanModify: penulis sendiri atau staff.
func CanModify(authorID, actorID uuid.UUID, isStaff bool) error {
	if isStaff || authorID == actorID {
		return nil
	}
	return ErrNotPostOwner
}

// CanEdit: pemilik boleh mengubah selama thread terbuka; staff tetap boleh saat dikunci.
func CanEdit(forum *model.ForumModel, thread *model.ForumThreadModel, authorID, actorID uuid.UUID, isStaff bool) error {
	if err := CanModify(authorID, actorID, isStaff); err != nil {
		return err
	}
	if isStaff {
		return nil
	}
	return CanReply(forum, thread)
}

func decrement(col string) clause.Expr {
	return gorm.Expr("GREATEST(" + col + " - 1, 0)")
}

// CreateThread + ThreadCount forum dalam satu transaksi.
func CreateThread(ctx context.Context, db *gorm.DB, forum *model.ForumModel, t *model.ForumThreadModel) error {
	if !forum.IsActive {
		return ErrForumInactive
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t.ForumID = forum.ID
		t.InstansiID = forum.InstansiID
		t.LastActivityAt = time.Now()
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		return tx.Model(&model.ForumModel{}).Where("forum_id = ?", forum.ID).
			UpdateColumn("forum_thread_count", gorm.Expr("forum_thread_count + 1")).Error
	})
}

func DeleteThread(ctx context.Context, db *gorm.DB, t *model.ForumThreadModel) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(t).Error; err != nil {
			return err
		}
		return tx.Model(&model.ForumModel{}).Where("forum_id = ?", t.ForumID).
			UpdateColumn("forum_thread_count", decrement("forum_thread_count")).Error
	})
}

// Reply: cek lock di dalam transaksi (row lock thread), lalu naikkan ReplyCount + LastActivityAt.
func Reply(ctx context.Context, db *gorm.DB, forum *model.ForumModel, threadID uuid.UUID, p *model.ForumPostModel) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t model.ForumThreadModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&t, "forum_thread_id = ?", threadID).Error; err != nil {
			return err
		}
		if err := CanReply(forum, &t); err != nil {
			return err
		}
		if p.ParentID != nil {
			var n int64
			if err := tx.Model(&model.ForumPostModel{}).
				Where("forum_post_id = ? AND forum_post_thread_id = ?", *p.ParentID, t.ID).
				Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return ErrParentMismatch
			}
		}

		now := time.Now()
		p.ThreadID = t.ID
		p.InstansiID = t.InstansiID
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return tx.Model(&model.ForumThreadModel{}).Where("forum_thread_id = ?", t.ID).
			UpdateColumns(map[string]any{
				"forum_thread_reply_count":      gorm.Expr("forum_thread_reply_count + 1"),
				"forum_thread_last_activity_at": now,
			}).Error
	})
}

// DeletePost: soft delete + ReplyCount turun (tidak pernah < 0).
func DeletePost(ctx context.Context, db *gorm.DB, p *model.ForumPostModel) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(p)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&model.ForumThreadModel{}).Where("forum_thread_id = ?", p.ThreadID).
			UpdateColumn("forum_thread_reply_count", decrement("forum_thread_reply_count")).Error
	})
}

// IncrementView tanpa menyentuh updated_at.
func IncrementView(ctx context.Context, db *gorm.DB, threadID uuid.UUID) error {
	return db.WithContext(ctx).Model(&model.ForumThreadModel{}).Where("forum_thread_id = ?", threadID).
		UpdateColumn("forum_thread_view_count", gorm.Expr("forum_thread_view_count + 1")).Error
}
