package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"sekolahku_backend/internals/features/elearning/forums/model"
)

func TestCanReply(t *testing.T) {
	tests := []struct {
		name   string
		forum  model.ForumModel
		thread model.ForumThreadModel
		want   error
	}{
		{"open", model.ForumModel{IsActive: true}, model.ForumThreadModel{}, nil},
		{"locked", model.ForumModel{IsActive: true}, model.ForumThreadModel{IsLocked: true}, ErrThreadLocked},
		{"inactive forum", model.ForumModel{IsActive: false}, model.ForumThreadModel{}, ErrForumInactive},
		{"inactive and locked", model.ForumModel{}, model.ForumThreadModel{IsLocked: true}, ErrForumInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanReply(&tt.forum, &tt.thread)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCanModify(t *testing.T) {
	author, other := uuid.New(), uuid.New()
	assert.NoError(t, CanModify(author, author, false))
	assert.NoError(t, CanModify(author, other, true))
	assert.ErrorIs(t, CanModify(author, other, false), ErrNotPostOwner)
}

func TestCanEdit(t *testing.T) {
	author, other := uuid.New(), uuid.New()
	open := model.ForumModel{IsActive: true}
	tests := []struct {
		name   string
		forum  model.ForumModel
		thread model.ForumThreadModel
		actor  uuid.UUID
		staff  bool
		want   error
	}{
		{"author open thread", open, model.ForumThreadModel{}, author, false, nil},
		{"author locked thread", open, model.ForumThreadModel{IsLocked: true}, author, false, ErrThreadLocked},
		{"author inactive forum", model.ForumModel{}, model.ForumThreadModel{}, author, false, ErrForumInactive},
		{"staff locked thread", open, model.ForumThreadModel{IsLocked: true}, other, true, nil},
		{"staff inactive forum", model.ForumModel{}, model.ForumThreadModel{}, other, true, nil},
		{"stranger open thread", open, model.ForumThreadModel{}, other, false, ErrNotPostOwner},
		{"stranger locked thread", open, model.ForumThreadModel{IsLocked: true}, other, false, ErrNotPostOwner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanEdit(&tt.forum, &tt.thread, author, tt.actor, tt.staff)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
