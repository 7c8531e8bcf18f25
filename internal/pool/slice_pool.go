package pool

import "sync"

// int64SlicePool recycles the fixed-point accumulators used while decoding.
var int64SlicePool = sync.Pool{
	New: func() any { return &[]int64{} },
}

// GetInt64Slice retrieves a zeroed int64 slice of the given length from the pool.
//
// The caller must call the returned cleanup function, typically with defer, to return
// the slice to the pool.
//
// Example:
//
//	acc, cleanup := pool.GetInt64Slice(items)
//	defer cleanup()
func GetInt64Slice(size int) ([]int64, func()) {
	ptr, _ := int64SlicePool.Get().(*[]int64)
	slice := *ptr

	if cap(slice) < size {
		slice = make([]int64, size)
	} else {
		slice = slice[:size]
		clear(slice)
	}
	*ptr = slice

	return slice, func() { int64SlicePool.Put(ptr) }
}
