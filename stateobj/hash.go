package stateobj

import (
	"encoding/binary"
	"hash/fnv"
)

// hashUint32s returns the FNV-1a hash of vs, used to detect whether a
// state-object family's relevant inputs changed since the last Apply.
func hashUint32s(vs ...uint32) uint64 {
	h := fnv.New64a()
	var buf [4]byte
	for _, v := range vs {
		binary.LittleEndian.PutUint32(buf[:], v)
		h.Write(buf[:])
	}
	return h.Sum64()
}
