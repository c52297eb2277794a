package workflow

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"gfyup/internal/services"
)

// acquireOutputLock takes the advisory lock guarding outputPath. The lock
// file is left on disk after release.
func acquireOutputLock(outputPath string) (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, services.Wrap(services.ErrEnvironment, stagePrepare, "create output directory", outputPath, err)
	}
	lock := flock.New(outputPath + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrEnvironment, stagePrepare, "lock output", outputPath, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrInput, stagePrepare, "lock output",
			fmt.Sprintf("another upload is using %s", outputPath), nil)
	}
	return lock, nil
}
