//go:build !tinygo
// +build !tinygo

package haste

import "sync/atomic"

// The gc compiler has no volatile.  Atomic loads and stores are never
// merged or dropped, which is the property the workload needs. No
// read-modify-write instruction is used, those can fault on uncached memory.

func loadWord(p *uint64) uint64 {
	return atomic.LoadUint64(p)
}

func storeWord(p *uint64, v uint64) {
	atomic.StoreUint64(p, v)
}
