package block

import "testing"

func BenchmarkAlloc(b *testing.B) {
	blk, err := New(testLayout.Size(), 1<<20)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := blk.Alloc(16, 8); err != nil {
			b.StopTimer()
			blk, err = New(testLayout.Size(), 1<<20)
			if err != nil {
				b.Fatal(err)
			}
			b.StartTimer()
		}
	}
}

func BenchmarkListAppend(b *testing.B) {
	newList := func() (List[int32], error) {
		blk, err := New(testLayout.Size(), 1<<20)
		if err != nil {
			return List[int32]{}, err
		}
		return ListAt(blk, testItemsOff, Int32), nil
	}
	l, err := newList()
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Keep chains short: append cost is linear in list length.
		if i&255 == 0 {
			l.Clear()
		}
		if err := l.Append(int32(i)); err != nil {
			b.StopTimer()
			if l, err = newList(); err != nil {
				b.Fatal(err)
			}
			b.StartTimer()
		}
	}
}

func BenchmarkVectorAt(b *testing.B) {
	blk, err := New(testLayout.Size(), 1<<16)
	if err != nil {
		b.Fatal(err)
	}
	v := VectorAt(blk, testScoresOff, Int32)
	if err := v.Create(1024); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := v.At(uint32(i) & 1023); err != nil {
			b.Fatal(err)
		}
	}
}
