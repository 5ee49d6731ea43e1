//go:build tinygo
// +build tinygo

package haste

import "runtime/volatile"

// every load and store has to hit memory, one at a time, in order

func loadWord(p *uint64) uint64 {
	return volatile.LoadUint64(p)
}

func storeWord(p *uint64, v uint64) {
	volatile.StoreUint64(p, v)
}
