// Package pool provides pooled byte buffers for accumulating encoded word
// streams without per-encode allocations.
package pool

import (
	"io"
	"sync"
)

// Default sizing for pooled word-stream buffers. A word stream grows in
// 8-byte steps, so the defaults are multiples of the word size.
const (
	// WordBufferDefaultSize is the initial capacity of a pooled buffer,
	// enough for 512 encoded words.
	WordBufferDefaultSize = 512 * 8
	// WordBufferMaxThreshold is the largest buffer returned to the pool;
	// bigger ones are dropped to avoid retaining memory after a burst.
	WordBufferMaxThreshold = 1024 * 64
)

// ByteBuffer is a reusable byte slice wrapper handed out by the pool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, retaining the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers backed by sync.Pool.
//
// The pool can be configured with a maximum capacity threshold so that
// buffers grown far beyond the typical stream size are not retained.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool handing out buffers of the given default
// capacity. Buffers whose capacity exceeds maxThreshold are dropped on Put;
// a maxThreshold of 0 disables the limit.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var wordStreamPool = NewByteBufferPool(WordBufferDefaultSize, WordBufferMaxThreshold)

// GetWordBuffer retrieves a ByteBuffer from the default word-stream pool.
func GetWordBuffer() *ByteBuffer {
	return wordStreamPool.Get()
}

// PutWordBuffer returns a ByteBuffer to the default word-stream pool.
func PutWordBuffer(bb *ByteBuffer) {
	wordStreamPool.Put(bb)
}
