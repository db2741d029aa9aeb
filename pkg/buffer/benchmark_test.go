package buffer

import (
	"fmt"
	"sync"
	"testing"
)

func BenchmarkBufferWrite(b *testing.B) {
	policies := []OverflowPolicy{DropOldest, DropNewest}
	for _, policy := range policies {
		b.Run(policy.String(), func(b *testing.B) {
			buf, err := NewCircularBuffer[int](1024, WithOverflowPolicy[int](policy))
			if err != nil {
				b.Fatal(err)
			}
			defer buf.Close()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = buf.Write(i)
			}
		})
	}
}

func BenchmarkBufferReadBatch(b *testing.B) {
	buf, err := NewCircularBuffer[int](1024)
	if err != nil {
		b.Fatal(err)
	}
	defer buf.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		for j := 0; j < 100; j++ {
			_ = buf.Write(j)
		}
		b.StartTimer()
		_ = buf.ReadBatch(100)
	}
}

func BenchmarkBufferSnapshot(b *testing.B) {
	for _, size := range []int{64, 1024, 16384} {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			buf, err := NewCircularBuffer[int](size)
			if err != nil {
				b.Fatal(err)
			}
			defer buf.Close()
			for i := 0; i < size+size/2; i++ {
				_ = buf.Write(i)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = buf.SnapshotReverse()
			}
		})
	}
}

func BenchmarkBufferProducerConsumer(b *testing.B) {
	buf, err := NewCircularBuffer[int](256, WithOverflowPolicy[int](Block))
	if err != nil {
		b.Fatal(err)
	}
	defer buf.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for read := 0; read < b.N; {
			read += len(buf.ReadBatch(64))
		}
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = buf.Write(i)
	}
	wg.Wait()
}
