package checkpoint

import (
	"time"

	"github.com/cenkalti/backoff"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "checkpoint")

// withBackoff retries fn with an exponential backoff, matching
// backoff.RetryNotify(fn, backoff.NewExponentialBackOff(), ...) as used in
// sr.go and inmaputil/cloud.go against transient filesystem/network
// failures on a shared store.
func withBackoff(fn func() error, notify func(error, time.Duration)) error {
	return backoff.RetryNotify(fn, backoff.NewExponentialBackOff(), func(err error, d time.Duration) {
		log.WithFields(logrus.Fields{"retry_in": d}).Warnf("%v: retrying", err)
		if notify != nil {
			notify(err, d)
		}
	})
}
