package cache

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

const secondsPerDay = 86400

// AgeDays returns the age of the file at path in days, measured from its
// last-modified time to now. The age is negative when the mtime is in the
// future (local clock behind the file's clock).
func AgeDays(path string) (float64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return time.Since(info.ModTime()).Seconds() / secondsPerDay, nil
}

// IsFresh reports whether the file at path exists and is no older than
// maxAgeDays. A missing file is never fresh, regardless of the threshold.
// A file with a future mtime is never fresh either: clock skew must not mask
// a needed refresh. With maxAgeDays of zero only a file written in the same
// instant counts as fresh, which gives callers a deterministic way to force
// a refresh without deleting the cache.
//
// Stat failures other than "does not exist" are returned to the caller as
// I/O errors; a missing file returns (false, nil).
func IsFresh(path string, maxAgeDays float64) (bool, error) {
	age, err := AgeDays(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if age < 0 || age > maxAgeDays {
		return false, nil
	}
	return true, nil
}
