package model

import (
	"reflect"
	"testing"
)

func TestPriceRing(t *testing.T) {
	r := newPriceRing(3)
	if _, ok := r.last(); ok {
		t.Fatal("empty ring reported a last value")
	}
	for i, v := range []float64{1, 2, 3} {
		if r.push(v) {
			t.Fatalf("push %d evicted before the ring was full", i)
		}
	}
	if !r.push(4) {
		t.Fatal("push onto full ring did not evict")
	}
	if got := r.values(); !reflect.DeepEqual(got, []float64{2, 3, 4}) {
		t.Fatalf("values() = %v", got)
	}
	if got := r.tail(2); !reflect.DeepEqual(got, []float64{3, 4}) {
		t.Fatalf("tail(2) = %v", got)
	}
	if got := r.tail(10); len(got) != 3 {
		t.Fatalf("tail(10) = %v", got)
	}
	if last, _ := r.last(); last != 4 || r.len() != 3 {
		t.Fatalf("last = %v len = %d", last, r.len())
	}
}
