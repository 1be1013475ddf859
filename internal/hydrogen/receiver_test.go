package hydrogen

import (
	"reflect"
	"testing"
	"time"
)

func TestPriceReceiver(t *testing.T) {
	r, err := NewPriceReceiver(2)
	if err != nil {
		t.Fatal(err)
	}
	now := time.Now()

	first := r.Receive(newSignal(KindPriceUpdate, "shop", 10, 0, 0, now))
	if !first.Accepted || first.PreviousPrice != 0 {
		t.Fatalf("first receipt = %+v", first)
	}
	second := r.Receive(newSignal(KindPriceUpdate, "shop", 12, 10, 20, now))
	if !second.Accepted || second.PreviousPrice != 10 {
		t.Fatalf("second receipt = %+v", second)
	}

	rejected := r.Receive(newSignal(KindPriceUpdate, "shop", 0, 12, -100, now))
	if rejected.Accepted || rejected.PreviousPrice != 12 {
		t.Fatalf("zero price receipt = %+v", rejected)
	}
	if p, ok := r.Lookup("shop"); !ok || p != 12 {
		t.Fatalf("Lookup(shop) = %v, %v", p, ok)
	}
}

func TestPriceReceiverEvictsLeastRecent(t *testing.T) {
	r, err := NewPriceReceiver(2)
	if err != nil {
		t.Fatal(err)
	}
	now := time.Now()
	r.Receive(newSignal(KindPriceUpdate, "a", 1, 0, 0, now))
	r.Receive(newSignal(KindPriceUpdate, "b", 2, 0, 0, now))
	r.Receive(newSignal(KindPriceUpdate, "a", 3, 1, 200, now))
	r.Receive(newSignal(KindPriceUpdate, "c", 4, 0, 0, now))

	if _, ok := r.Lookup("b"); ok {
		t.Fatal("b should have been evicted")
	}
	if got := r.Sites(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("Sites() = %v", got)
	}
}
