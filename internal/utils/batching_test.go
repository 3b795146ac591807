package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBatchBufferAddAndDrain(t *testing.T) {
	buffer := NewBatchBuffer[string]()
	require.False(t, buffer.HasData())
	require.Zero(t, buffer.Size())

	buffer.Add("a")
	buffer.Add("b")
	require.True(t, buffer.HasData())
	require.Equal(t, 2, buffer.Size())

	batch := buffer.GetAndClear()
	require.Equal(t, []string{"a", "b"}, batch)
	require.False(t, buffer.HasData())
	require.Zero(t, buffer.Size())
}

func TestBatchBufferEmptyDrainIsNil(t *testing.T) {
	buffer := NewBatchBuffer[int]()
	require.Nil(t, buffer.GetAndClear())
}

func TestBatchBufferConcurrentAdds(t *testing.T) {
	buffer := NewBatchBuffer[int]()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			buffer.Add(n)
		}(i)
	}
	wg.Wait()

	require.Equal(t, 100, buffer.Size())
	require.Len(t, buffer.GetAndClear(), 100)
}
