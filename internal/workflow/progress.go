package workflow

import (
	"fmt"
	"sync"

	"gfyup/internal/services/gfycat"
)

const progressBuckets = 10

// UploadProgress returns a callback that reports upload progress to
// reporter each time another tenth of the file has been sent.
func UploadProgress(reporter Reporter) gfycat.ProgressFunc {
	var (
		mu   sync.Mutex
		last = 0
	)
	return func(sent, total int64) {
		if reporter == nil || total <= 0 {
			return
		}
		bucket := int(sent * progressBuckets / total)
		mu.Lock()
		if bucket <= last {
			mu.Unlock()
			return
		}
		last = bucket
		mu.Unlock()

		reporter.Report(Event{
			Milestone: MilestoneUploadProgress,
			Sent:      sent,
			Total:     total,
			Message:   fmt.Sprintf("Uploaded %d%% (%d of %d bytes)", bucket*100/progressBuckets, sent, total),
		})
	}
}
