// internals/features/epapers/shares/scheduler/cleanup.go
package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	editionService "koranku_backend/internals/features/epapers/editions/service"
	"koranku_backend/internals/features/epapers/shares/model"
)

// StartShareCleanupScheduler sweeps expired cropped shares in the
// background: crop file first, then the row, 100 rows per pass.
// Lookup already refuses expired tokens, so the sweep only reclaims
// storage and keeps the table small.
func StartShareCleanupScheduler(db *gorm.DB, store *editionService.ArtifactStore) {
	go func() {
		intervalHours := 24
		if val := os.Getenv("SHARE_CLEANUP_INTERVAL_HOURS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				intervalHours = parsed
			}
		}

		for {
			log.Println("[CLEANUP] Sweeping expired cropped shares...")

			var expired []model.CroppedShareModel
			if err := db.
				Where("cropped_share_expires_at <= ?", time.Now()).
				Limit(100).
				Find(&expired).Error; err != nil {
				log.Printf("[CLEANUP ERROR] Failed to fetch expired shares: %v", err)
			} else if len(expired) > 0 {
				removed := 0
				for _, s := range expired {
					if err := store.Remove(s.CroppedShareImagePath); err != nil {
						log.Printf("[CLEANUP ERROR] Failed to remove crop file %s: %v", s.CroppedShareImagePath, err)
						continue
					}
					if err := db.Where("cropped_share_id = ?", s.CroppedShareID).
						Delete(&model.CroppedShareModel{}).Error; err != nil {
						log.Printf("[CLEANUP ERROR] Failed to delete share row %s: %v", s.CroppedShareID, err)
						continue
					}
					removed++
				}
				log.Printf("[CLEANUP] %d expired shares removed", removed)
			} else {
				log.Println("[CLEANUP] No expired shares")
			}

			time.Sleep(time.Duration(intervalHours) * time.Hour)
		}
	}()
}
