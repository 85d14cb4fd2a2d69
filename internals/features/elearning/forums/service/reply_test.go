package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/databases/dbtest"
	"sekolahku_backend/internals/features/elearning/forums/model"
)

func TestReplyCountsAndLocks(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	forum := model.ForumModel{InstansiID: uuid.New(), Title: "Diskusi Kelas 7", IsActive: true}
	require.NoError(t, db.Create(&forum).Error)
	thread := model.ForumThreadModel{AuthorID: uuid.New(), Title: "PR Matematika", Body: "Nomor 3 bagaimana?"}
	require.NoError(t, CreateThread(ctx, db, &forum, &thread))

	replies := func() int {
		var th model.ForumThreadModel
		require.NoError(t, db.First(&th, "forum_thread_id = ?", thread.ID).Error)
		return th.ReplyCount
	}

	first := model.ForumPostModel{AuthorID: uuid.New(), Body: "Pakai rumus luas"}
	require.NoError(t, Reply(ctx, db, &forum, thread.ID, &first))
	nested := model.ForumPostModel{AuthorID: uuid.New(), Body: "Setuju", ParentID: &first.ID}
	require.NoError(t, Reply(ctx, db, &forum, thread.ID, &nested))
	assert.Equal(t, 2, replies())

	stray := uuid.New()
	err := Reply(ctx, db, &forum, thread.ID, &model.ForumPostModel{AuthorID: uuid.New(), Body: "x", ParentID: &stray})
	assert.ErrorIs(t, err, ErrParentMismatch)
	assert.Equal(t, 2, replies())

	require.NoError(t, db.Model(&thread).UpdateColumn("forum_thread_is_locked", true).Error)
	err = Reply(ctx, db, &forum, thread.ID, &model.ForumPostModel{AuthorID: uuid.New(), Body: "telat"})
	assert.ErrorIs(t, err, ErrThreadLocked)
	assert.Equal(t, 2, replies())

	require.NoError(t, DeletePost(ctx, db, &nested))
	require.NoError(t, DeletePost(ctx, db, &nested))
	assert.Equal(t, 1, replies())
}
