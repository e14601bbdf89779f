package kvstore

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain ensures the store's single-writer goroutine doesn't leak past
// Close.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("sync.runtime_Semacquire"),
	)
}
