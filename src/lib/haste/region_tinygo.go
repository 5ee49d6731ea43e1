//go:build tinygo
// +build tinygo

package haste

import "unsafe"

// RegionAt builds a region over a fixed virtual address.  The mapping has to
// exist already and stay put for as long as the region is used.
func RegionAt(name string, virt uintptr, phys uintptr, geom Geometry) (*Region, error) {
	if err := geom.validate(); err != nil {
		return nil, err
	}
	words := unsafe.Slice((*uint64)(unsafe.Pointer(virt)), geom.Words())
	return RegionOver(name, words, phys, geom)
}
