package cir

// BlockPool is a free-list of empty scratch blocks, reused while
// buffering assignments during aggregate initialization so that heavy
// union traversal (which acquires and releases a scratch block for
// every union it initializes) doesn't churn the allocator. It is not a
// correctness concern — a fresh *Block per Acquire would behave
// identically — but the union-initialization protocol in cinit relies
// on it being cheap to acquire and release many short-lived blocks.
type BlockPool struct {
	free []*Block
}

// NewBlockPool returns an empty pool. Most callers use the
// package-level default pool via AcquireBlock/ReleaseBlock instead of
// constructing their own, the same way the front end's pool is
// process-wide.
func NewBlockPool() *BlockPool {
	return &BlockPool{}
}

// Acquire returns an empty block: one popped off the free list, or a
// freshly allocated one if the list is empty.
func (p *BlockPool) Acquire() *Block {
	n := len(p.free)
	if n == 0 {
		return &Block{}
	}
	b := p.free[n-1]
	p.free = p.free[:n-1]
	return b
}

// Release returns b to the pool. It asserts b carries no label and no
// pending init-value marker — a caller handing back a block that
// still has unconsumed state is a bug in the walker, not something
// this pool silently tolerates — then empties its code and pushes it
// back.
func (p *BlockPool) Release(b *Block) {
	if b.HasLabel() {
		panic("cir: release of a labeled block")
	}
	if b.HasInitValue {
		panic("cir: release of a block with a pending init value")
	}
	b.reset()
	p.free = append(p.free, b)
}

// Finalize drops every block held by the pool, the process-wide
// analogue of tearing down the compiler's scratch-block allocator at
// the end of a translation unit.
func (p *BlockPool) Finalize() {
	p.free = nil
}

var defaultPool = NewBlockPool()

func AcquireBlock() *Block   { return defaultPool.Acquire() }
func ReleaseBlock(b *Block)  { defaultPool.Release(b) }
func FinalizeBlockPool()     { defaultPool.Finalize() }
