package mem

import (
	"math"
	"sort"
	"unsafe"

	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/internal/format"
)

// region is one mapping owned by the arena.
type region struct {
	base    uintptr // address of data[0]
	data    []byte  // usable bytes; for medium regions aligned to len(data)
	mapping []byte  // the slice the Mapper returned
	kind    Kind
	exp     int // medium regions: log2(len(data))
}

func (r *region) end() uintptr {
	return r.base + uintptr(len(r.data))
}

// space resolves addresses to bounds-checked slices of the regions that own
// them. It is the only place addresses and Go memory meet.
type space struct {
	regions []*region // sorted by base, non-overlapping
}

// addrOf returns the address of the first element of b's backing array.
func addrOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

func newRegion(mapping []byte, off, n int, kind Kind) *region {
	data := mapping[off : off+n : off+n]
	r := &region{
		base:    addrOf(data),
		data:    data,
		mapping: mapping,
		kind:    kind,
	}
	if kind == Medium {
		r.exp = format.CeilLog2(uint64(n))
	}
	return r
}

func (s *space) add(r *region) {
	i := sort.Search(len(s.regions), func(i int) bool { return s.regions[i].base >= r.base })
	s.regions = append(s.regions, nil)
	copy(s.regions[i+1:], s.regions[i:])
	s.regions[i] = r
}

func (s *space) remove(r *region) bool {
	i := sort.Search(len(s.regions), func(i int) bool { return s.regions[i].base >= r.base })
	if i == len(s.regions) || s.regions[i] != r {
		return false
	}
	copy(s.regions[i:], s.regions[i+1:])
	s.regions[len(s.regions)-1] = nil
	s.regions = s.regions[:len(s.regions)-1]
	return true
}

// find returns the region containing addr, or nil.
func (s *space) find(addr uintptr) *region {
	i := sort.Search(len(s.regions), func(i int) bool { return s.regions[i].end() > addr })
	if i == len(s.regions) || s.regions[i].base > addr {
		return nil
	}
	return s.regions[i]
}

// span returns the n bytes at addr if they lie entirely inside one region.
func (s *space) span(addr uintptr, n uint64) (*region, []byte, bool) {
	if _, ok := buf.AddrEnd(addr, n); !ok || n > math.MaxInt {
		return nil, nil, false
	}
	r := s.find(addr)
	if r == nil {
		return nil, nil, false
	}
	b, ok := buf.Slice(r.data, int(addr-r.base), int(n))
	if !ok {
		return nil, nil, false
	}
	return r, b, true
}

func (s *space) load(addr uintptr) (uintptr, bool) {
	_, b, ok := s.span(addr, format.WordSize)
	if !ok {
		return 0, false
	}
	return format.ReadAddr(b, format.NextOffset), true
}

func (s *space) store(addr, v uintptr) bool {
	_, b, ok := s.span(addr, format.WordSize)
	if !ok {
		return false
	}
	format.PutAddr(b, format.NextOffset, v)
	return true
}

// mapped reports the total bytes of all registered mappings.
func (s *space) mapped() int {
	n := 0
	for _, r := range s.regions {
		n += len(r.mapping)
	}
	return n
}
