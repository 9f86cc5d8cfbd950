package db

import (
	"strconv"
	"time"

	"transfers/internal/utils"
)

const maxAttempts = 3

// retrySleep is swapped out in tests to avoid real waiting.
var retrySleep = time.Sleep

// WithRetry runs fn up to three times, backing off attempt x 1s between
// tries. Only transient connection errors are retried; everything else
// surfaces on the first attempt.
func WithRetry(requestID, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		if attempt < maxAttempts {
			utils.LogEvent(requestID, "db", op,
				"transient error on attempt "+strconv.Itoa(attempt)+": "+err.Error())
			retrySleep(time.Duration(attempt) * time.Second)
		}
	}
	return err
}
