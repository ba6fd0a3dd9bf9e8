package scene

import "sync/atomic"

// IDAllocator hands out unique identifiers for nodes and materials.
// Each Session owns one; IDs start at 1 so zero can mean "none".
// Safe for concurrent use: loaders allocate from goroutines.
type IDAllocator struct {
	next atomic.Uint32
}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

func (a *IDAllocator) Next() uint32 {
	return a.next.Add(1)
}
