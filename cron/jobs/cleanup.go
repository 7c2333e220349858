package jobs

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"starter.GO/config"
	"starter.GO/cron"
)

func init() {
	cron.Register("avatarcleanup", "@hourly", AvatarCleanupJob)
}

// AvatarCleanupJob removes stale .tmp files left behind by interrupted avatar
// uploads. Files older than an hour are deleted.
func AvatarCleanupJob(args ...string) {
	dir := "media"
	if config.AppConfig != nil && config.AppConfig.MediaDir != "" {
		dir = config.AppConfig.MediaDir
	}
	cutoff := time.Now().Add(-time.Hour)
	removed := 0
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".tmp") && info.ModTime().Before(cutoff) {
			if os.Remove(path) == nil {
				removed++
			}
		}
		return nil
	})
	log.Printf("avatarcleanup: removed %d stale temp files", removed)
}
