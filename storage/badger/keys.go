package badger

import (
	"encoding/binary"

	"github.com/trafficlens/refsearch/core"
)

// Key prefixes for different data types
const (
	catalogPrefix    = "engcat"
	catalogLatestKey = "engcatcur"
)

// makeCatalogKey generates a key for a catalog snapshot by fingerprint.
func makeCatalogKey(fp core.Fingerprint) []byte {
	prefix := catalogPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(fp))
	return buf
}
