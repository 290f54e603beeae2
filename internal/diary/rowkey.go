package diary

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewRowKey synthesizes a row key from the entry's date and time plus a
// uniqueness suffix. The suffix combines wall-clock milliseconds with a
// random fragment: millisecond resolution alone can collide for entries
// created in the same tick, and the store silently overwrites on key
// collision.
func NewRowKey(date, timeOfDay string) string {
	return fmt.Sprintf("%s_%s_%d-%s", date, timeOfDay, time.Now().UnixMilli(), uuid.NewString()[:8])
}

// AnalysisRowKey derives a row key from an ISO-8601 timestamp. Colons and
// dots are not valid in row keys and are replaced with dashes.
func AnalysisRowKey(timestamp string) string {
	return strings.NewReplacer(":", "-", ".", "-").Replace(timestamp)
}
