package arm_cortex_a53

import (
	"errors"
	"fmt"
)

const GranuleSize = uintptr(0x1_0000)
const EntriesPerTable = 8192
const Level3Span = GranuleSize * EntriesPerTable //what one level 2 entry covers, 512MB

//drop bottom 64k
const noLast16 = 0xffffffffffff0000
const outputAddressMask = 0x0000ffffffffffff

var (
	ErrTableAlignment = errors.New("translation tables must be 64K aligned")
	ErrTableSpace     = errors.New("not enough space for translation tables")
	ErrUnmappable     = errors.New("mapping cannot be translated")
)

// Mapping sends Size bytes at Virtual to Physical with the given memory type.
// All three must be multiples of GranuleSize.
type Mapping struct {
	Virtual  uintptr
	Physical uintptr
	Size     uintptr
	Attr     MemoryAttr
}

//
// TranslationTables is the level 2 table followed by the level 3 tables it
// points at, all in one block of memory.  With a 42 bit address space and 64K
// granules there is no level 1: level 2 is selected by bits 41:29 and level 3
// by bits 28:16.  We only fill in the lowest level3 entries of level 2.
//
type TranslationTables struct {
	base   uintptr
	words  []uint64
	level3 int
}

// TableWords is how many 64 bit entries are needed for level3 tables plus
// the level 2 table.
func TableWords(level3 int) int {
	return (1 + level3) * EntriesPerTable
}

// NewTranslationTables formats words, which must be the memory at base, with
// every page faulting.
func NewTranslationTables(words []uint64, base uintptr, level3 int) (*TranslationTables, error) {
	if base&(GranuleSize-1) != 0 {
		return nil, fmt.Errorf("%w: base 0x%x", ErrTableAlignment, base)
	}
	if level3 <= 0 || level3 > EntriesPerTable || len(words) < TableWords(level3) {
		return nil, fmt.Errorf("%w: %d level 3 tables in %d entries", ErrTableSpace, level3, len(words))
	}
	t := &TranslationTables{base: base, words: words[:TableWords(level3)], level3: level3}
	for i := range t.words {
		t.words[i] = makeBadEntry()
	}
	for i := 0; i < level3; i++ {
		t.words[i] = makeTableEntry(t.level3Address(i))
	}
	return t, nil
}

func (t *TranslationTables) level3Address(i int) uintptr {
	return t.base + uintptr(1+i)*GranuleSize
}

// Span is the first virtual address the tables cannot translate.
func (t *TranslationTables) Span() uintptr {
	return uintptr(t.level3) * Level3Span
}

// Root is the value for TTBR0_EL1 and TTBR1_EL1.
func (t *TranslationTables) Root() uint64 {
	return uint64(t.base)
}

// Map writes the level 3 entries of m.  A later mapping replaces an earlier
// one where they overlap, which is how aliases are punched into an identity map.
func (t *TranslationTables) Map(m Mapping) error {
	if (m.Virtual|m.Physical|m.Size)&(GranuleSize-1) != 0 {
		return fmt.Errorf("%w: 0x%x->0x%x (0x%x bytes) is not 64K aligned", ErrUnmappable, m.Virtual, m.Physical, m.Size)
	}
	end := m.Virtual + m.Size
	if end < m.Virtual || end > t.Span() {
		return fmt.Errorf("%w: 0x%x-0x%x is beyond 0x%x", ErrUnmappable, m.Virtual, end, t.Span())
	}
	for off := uintptr(0); off < m.Size; off += GranuleSize {
		t.words[t.index(m.Virtual+off)] = makePageEntry(m.Physical+off, m.Attr)
	}
	return nil
}

// the level 3 tables are contiguous so the page number is the index
func (t *TranslationTables) index(virt uintptr) int {
	return EntriesPerTable + int(virt/GranuleSize)
}

// Lookup walks the tables the way the mmu would.
func (t *TranslationTables) Lookup(virt uintptr) (phys uintptr, attr MemoryAttr, ok bool) {
	if virt >= t.Span() {
		return 0, 0, false
	}
	l2 := t.words[virt/Level3Span]
	if l2&3 != 3 {
		return 0, 0, false
	}
	e := t.words[t.index(virt)]
	if e&3 != 3 {
		return 0, 0, false
	}
	page := uintptr(e & noLast16 & outputAddressMask)
	return page | virt&(GranuleSize-1), MemoryAttr((e >> 2) & 7), true
}

func makeTableEntry(destination uintptr) uint64 {
	return uint64(1<<63) | //NSTable
		uint64(destination)&noLast16 | //address of the _BASE_ of next table
		uint64(3<<0) //last two bits indicate page tbl
}

func makeBadEntry() uint64 {
	//*ANY* valid entry in a page table has the last bit high
	return 0
}

// AP is 0b00 and UXN, PXN are 0: RWX from EL1.
func makePageEntry(destination uintptr, attr MemoryAttr) uint64 {
	return uint64(destination)&noLast16 | //address of the PAGE
		(0b1 << 10) | //access flag, we don't take access faults
		(0b1 << 5) | //non-secure
		(uint64(attr)&0x7)<<2 | //index in the MAIR register
		uint64(0b11<<0) //0b11 is a page at level 3
}
