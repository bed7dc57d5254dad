package badger

import (
	"fmt"

	"github.com/poiesic/catalog/core"
)

// Key prefixes for different data types
const (
	snapshotPrefix    = "catsnap"
	snapshotLatestKey = "catsnaplatest"
)

// makeSnapshotKey generates a key for a catalog snapshot by feed key.
func makeSnapshotKey(feedKey core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", snapshotPrefix, feedKey))
}

// makeLatestSnapshotKey generates the key holding the latest feed key pointer.
func makeLatestSnapshotKey() []byte {
	return []byte(snapshotLatestKey)
}
