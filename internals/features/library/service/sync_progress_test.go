package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/databases/dbtest"
	"sekolahku_backend/internals/features/library/model"
)

func TestSyncProgressCountsReaderOnce(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	book := model.LibraryBookModel{
		InstansiID:  uuid.New(),
		Title:       "Laskar Pelangi",
		Slug:        "laskar-pelangi",
		FileURL:     "https://cdn.example.com/books/laskar.pdf",
		TotalPages:  100,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&book).Error)
	reader, other := uuid.New(), uuid.New()
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	readers := func() int {
		var b model.LibraryBookModel
		require.NoError(t, db.First(&b, "book_id = ?", book.ID).Error)
		return b.ReaderCount
	}

	steps := []struct {
		name    string
		user    uuid.UUID
		in      SyncInput
		applied bool
		readers int
		page    int
		seconds int64
	}{
		{"first sync", reader, SyncInput{CurrentPage: 5, ElapsedSeconds: 20, ClientTime: t0}, true, 1, 5, 20},
		{"resent sync", reader, SyncInput{CurrentPage: 5, ElapsedSeconds: 20, ClientTime: t0}, false, 1, 5, 20},
		{"next sync", reader, SyncInput{CurrentPage: 9, ElapsedSeconds: 15, ClientTime: t0.Add(15 * time.Second)}, true, 1, 9, 35},
		{"stale sync", reader, SyncInput{CurrentPage: 2, ElapsedSeconds: 10, ClientTime: t0.Add(5 * time.Second)}, false, 1, 9, 35},
		{"another reader", other, SyncInput{CurrentPage: 1, ElapsedSeconds: 5, ClientTime: t0}, true, 2, 1, 5},
	}
	for _, st := range steps {
		t.Run(st.name, func(t *testing.T) {
			p, applied, err := SyncProgress(ctx, db, &book, st.user, st.in, t0.Add(time.Minute))
			require.NoError(t, err)
			assert.Equal(t, st.applied, applied)
			assert.Equal(t, st.page, p.CurrentPage)
			assert.Equal(t, st.seconds, p.ReadingSeconds)
			assert.Equal(t, st.readers, readers())
		})
	}
}
