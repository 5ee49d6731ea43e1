package haste

import (
	"errors"
	"fmt"
	"unsafe"
)

var ErrMisaligned = errors.New("region base is not cacheline aligned")
var ErrBadGeometry = errors.New("region geometry is unusable")

const wordSize = int(unsafe.Sizeof(uint64(0)))

// Geometry is the shape of the workload: how many cachelines of what size get
// touched, and how many times over.
type Geometry struct {
	CachelineSize int //bytes, a platform constant, not read from the cpu
	Cachelines    int
	Iterations    int
}

// DefaultGeometry is five 64 byte lines, twenty thousand times.
func DefaultGeometry() Geometry {
	return Geometry{CachelineSize: 64, Cachelines: 5, Iterations: 20_000}
}

func (g Geometry) SizeBytes() int {
	return g.CachelineSize * g.Cachelines
}

func (g Geometry) Words() int {
	return g.SizeBytes() / wordSize
}

func (g Geometry) validate() error {
	if g.CachelineSize <= 0 || g.Cachelines <= 0 || g.Iterations <= 0 {
		return fmt.Errorf("%w: %d lines of %d bytes, %d iterations", ErrBadGeometry,
			g.Cachelines, g.CachelineSize, g.Iterations)
	}
	if g.CachelineSize%wordSize != 0 {
		return fmt.Errorf("%w: cacheline of %d bytes is not whole words", ErrBadGeometry, g.CachelineSize)
	}
	return nil
}

// Region is the memory the benchmark hammers.  It is borrowed, never owned:
// on the board it is a fixed virtual range set up by the mmu code, on the
// host it is a slice somebody else keeps alive.  Nobody else may touch it
// while Measure runs.
type Region struct {
	Name     string
	Virtual  uintptr
	Physical uintptr
	Geometry Geometry
	words    []uint64
}

// RegionOver wraps words, which must be at least geom.Words() long and start
// on a cacheline boundary.  phys is only used for reporting.
func RegionOver(name string, words []uint64, phys uintptr, geom Geometry) (*Region, error) {
	if err := geom.validate(); err != nil {
		return nil, err
	}
	if len(words) < geom.Words() {
		return nil, fmt.Errorf("%w: %d words supplied, %d needed", ErrBadGeometry, len(words), geom.Words())
	}
	virt := uintptr(unsafe.Pointer(&words[0]))
	if virt%uintptr(geom.CachelineSize) != 0 {
		return nil, fmt.Errorf("%w: 0x%x %% %d", ErrMisaligned, virt, geom.CachelineSize)
	}
	return &Region{
		Name:     name,
		Virtual:  virt,
		Physical: phys,
		Geometry: geom,
		words:    words[:geom.Words()],
	}, nil
}

// Words is the live view of the region.
func (r *Region) Words() []uint64 {
	return r.words
}
