package algo_test

import (
	"container/heap"
	"testing"

	"github.com/PrishaShah30/AIProject/router/algo"
	"github.com/stretchr/testify/assert"
)

func TestPriorityQueue(t *testing.T) {
	pq := make(algo.PriorityQueue, 0)
	pq.Push(&algo.Item{Value: 4, Priority: 4})
	pq.Push(&algo.Item{Value: 2, Priority: 2})
	pq.Push(&algo.Item{Value: 1, Priority: 1})
	pq.Push(&algo.Item{Value: 3, Priority: 3})

	// 建堆
	heap.Init(&pq)

	// 弹出
	item := heap.Pop(&pq).(*algo.Item)
	assert.Equal(t, 1, item.Value)
	assert.Equal(t, 1.0, item.Priority)
	assert.Equal(t, -1, item.Index)
	item = heap.Pop(&pq).(*algo.Item)
	assert.Equal(t, 2, item.Value)
	assert.Equal(t, 2.0, item.Priority)
}

func TestPriorityQueueChangePriority(t *testing.T) {
	pq := make(algo.PriorityQueue, 0)
	pq.Push(&algo.Item{Value: 4, Priority: 4})
	pq.Push(&algo.Item{Value: 2, Priority: 2})
	pq.Push(&algo.Item{Value: 1, Priority: 1})
	pq.Push(&algo.Item{Value: 3, Priority: 3})

	heap.Init(&pq)

	// 修改优先级（将Value==3的优先级改为0）
	for _, item := range pq {
		if item.Value == 3 {
			item.Priority = 0
			heap.Fix(&pq, item.Index)
		}
	}

	for _, want := range []int{3, 1, 2, 4} {
		item := heap.Pop(&pq).(*algo.Item)
		assert.Equal(t, want, item.Value)
	}
	// 空堆
	assert.Equal(t, 0, pq.Len())
}

func TestPriorityQueueTieBreakByValue(t *testing.T) {
	pq := make(algo.PriorityQueue, 0)
	heap.Push(&pq, &algo.Item{Value: 7, Priority: 5})
	heap.Push(&pq, &algo.Item{Value: 2, Priority: 5})
	heap.Push(&pq, &algo.Item{Value: 9, Priority: 1})
	heap.Push(&pq, &algo.Item{Value: 4, Priority: 5})

	for _, want := range []int{9, 2, 4, 7} {
		assert.Equal(t, want, heap.Pop(&pq).(*algo.Item).Value)
	}
}
