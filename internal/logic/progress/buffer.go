package progress

import (
	"sync"
)

// recordBuffer 并发安全的待落库缓冲区，Flush 取走全部内容
type recordBuffer[T any] struct {
	mu    sync.Mutex
	items []T
	limit int // 超过 limit 时丢弃最旧的记录，0 表示不限
}

func newRecordBuffer[T any](limit int) *recordBuffer[T] {
	return &recordBuffer[T]{limit: limit}
}

// Add 追加记录，返回因超限被丢弃的条数
func (b *recordBuffer[T]) Add(items ...T) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, items...)
	if b.limit > 0 && len(b.items) > b.limit {
		dropped := len(b.items) - b.limit
		b.items = append(b.items[:0:0], b.items[dropped:]...)
		return dropped
	}
	return 0
}

func (b *recordBuffer[T]) Flush() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	flushed := b.items
	b.items = nil
	return flushed
}

func (b *recordBuffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}
