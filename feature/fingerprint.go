package feature

import (
	"fmt"
	"hash/fnv"
)

// fingerprintOperation hashes an operation's literal field values
// (including the GeomRefs and sketch entities it carries). Every variant
// is a plain value type with no maps, so %#v's field order is
// deterministic and two equal operations always hash equal.
func fingerprintOperation(op Operation) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%#v", op)
	return h.Sum64()
}

// combineFingerprint folds an upstream fingerprint forward across one more
// feature's param fingerprint, so upstreamFingerprint(i) captures the
// identity of the entire prefix before feature i.
func combineFingerprint(paramFingerprint, upstream uint64) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d:%d", paramFingerprint, upstream)
	return h.Sum64()
}
