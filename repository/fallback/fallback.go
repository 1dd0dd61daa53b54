// Package fallback composes a remote repository with a durable local
// mirror. Every remote failure degrades silently to the mirror so the
// application keeps working offline; the two tiers may diverge and no
// reconciliation happens beyond the mirroring done here. Fallback only
// triggers on an outright rejected call, never on latency.
package fallback

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// localIDPrefix marks ids synthesized while the remote store was
// unreachable so they stay distinguishable from remote-assigned ids.
const localIDPrefix = "local-"

func newLocalID() string {
	return fmt.Sprintf("%s%d-%s", localIDPrefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}

// IsLocalID reports whether the id was synthesized during a remote outage.
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, localIDPrefix)
}
