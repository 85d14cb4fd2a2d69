package helper

import (
	"context"
	"log"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
)

// SoftDeleteTarget: tabel yang baris soft-deleted-nya di-hard-delete setelah retensi.
type SoftDeleteTarget struct {
	Table string
	Col   string
}

var SoftDeleteTargets = []SoftDeleteTarget{
	{Table: "news", Col: "news_deleted_at"},
	{Table: "gallery_items", Col: "gallery_item_deleted_at"},
	{Table: "galleries", Col: "gallery_deleted_at"},
	{Table: "downloads", Col: "download_deleted_at"},
	{Table: "books", Col: "book_deleted_at"},
	{Table: "forum_posts", Col: "forum_post_deleted_at"},
}

// StartTrashReaperCron: bersihkan trash/ di OSS + hard-delete soft-deleted rows.
func StartTrashReaperCron(svc *OSSService, db *gorm.DB) *cron.Cron {
	schedule := configs.GetEnv("REAPER_CRON", "15 2 * * *")
	retention := time.Duration(configs.GetEnvInt("RETENTION_DAYS", 30)) * 24 * time.Hour
	dryRun := configs.GetEnvBool("REAPER_DRY_RUN", false)

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()

		if svc != nil {
			if err := runOSSReaper(ctx, svc.Bucket, TrashPrefix+"/", retention, dryRun); err != nil {
				log.Printf("[TRASH-REAPER] OSS error: %v", err)
			}
		}
		if err := runDBReaper(ctx, db, retention); err != nil {
			log.Printf("[TRASH-REAPER] DB error: %v", err)
		}
	})
	if err != nil {
		log.Printf("[TRASH-REAPER] add cron gagal: %v", err)
		return nil
	}
	log.Printf("[TRASH-REAPER] started schedule=%q retention=%s dryRun=%v", schedule, retention, dryRun)
	c.Start()
	return c
}

func runOSSReaper(ctx context.Context, bucket *oss.Bucket, prefix string, retention time.Duration, dryRun bool) error {
	threshold := time.Now().Add(-retention)
	marker := oss.Marker("")
	var keys []string
	scanned := 0

	for {
		lor, err := bucket.ListObjects(oss.Prefix(prefix), marker, oss.MaxKeys(1000), oss.WithContext(ctx))
		if err != nil {
			return err
		}
		for _, obj := range lor.Objects {
			scanned++
			if obj.Key != "" && obj.LastModified.Before(threshold) {
				keys = append(keys, obj.Key)
			}
		}
		if !lor.IsTruncated {
			break
		}
		marker = oss.Marker(lor.NextMarker)
	}

	if len(keys) == 0 || dryRun {
		log.Printf("[OSS-REAPER] candidates=%d scanned=%d dry=%v", len(keys), scanned, dryRun)
		return nil
	}

	deleted := 0
	for i := 0; i < len(keys); i += 1000 {
		end := min(i+1000, len(keys))
		if _, err := bucket.DeleteObjects(keys[i:end], oss.DeleteObjectsQuiet(true), oss.WithContext(ctx)); err != nil {
			log.Printf("[OSS-REAPER] delete batch %d-%d gagal: %v", i, end, err)
			continue
		}
		deleted += end - i
	}
	log.Printf("[OSS-REAPER] deleted %d objects (scanned=%d)", deleted, scanned)
	return nil
}

func runDBReaper(ctx context.Context, db *gorm.DB, retention time.Duration) error {
	if db == nil {
		return nil
	}
	cutoff := time.Now().Add(-retention)
	for _, t := range SoftDeleteTargets {
		res := db.WithContext(ctx).Exec(
			`DELETE FROM `+t.Table+` WHERE `+t.Col+` IS NOT NULL AND `+t.Col+` < ?`, cutoff,
		)
		if res.Error != nil {
			log.Printf("[DB-REAPER] %s: %v", t.Table, res.Error)
			continue
		}
		if res.RowsAffected > 0 {
			log.Printf("[DB-REAPER] %s: hard-deleted %d rows", t.Table, res.RowsAffected)
		}
	}
	return nil
}
