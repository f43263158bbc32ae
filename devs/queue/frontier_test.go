package queue

import (
	"testing"

	"github.com/dshills/devs-go/devs"
)

func TestFrontierUpsertAndMin(t *testing.T) {
	f := New[float64](devs.NewDoubleDomain())

	f.Upsert("b", 5)
	f.Upsert("a", 2)
	f.Upsert("c", 8)

	min, ok := f.Min()
	if !ok {
		t.Fatal("Min() reported empty queue")
	}
	if min.ID != "a" || min.Next != 2 {
		t.Fatalf("Min() = %+v, want {a 2}", min)
	}
	if f.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", f.Len())
	}
}

func TestFrontierUpsertRekeysInPlace(t *testing.T) {
	f := New[float64](devs.NewDoubleDomain())
	f.Upsert("a", 5)
	f.Upsert("a", 1)

	if f.Len() != 1 {
		t.Fatalf("re-keying should not grow the queue, got len %d", f.Len())
	}
	min, _ := f.Min()
	if min.Next != 1 {
		t.Fatalf("Min().Next = %v, want 1 after rekey", min.Next)
	}
}

func TestFrontierRemove(t *testing.T) {
	f := New[float64](devs.NewDoubleDomain())
	f.Upsert("a", 1)
	f.Upsert("b", 2)

	f.Remove("a")
	if f.Has("a") {
		t.Fatal("Has(a) should be false after Remove")
	}
	if f.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after Remove", f.Len())
	}
	min, _ := f.Min()
	if min.ID != "b" {
		t.Fatalf("Min() = %+v, want b", min)
	}
}

func TestFrontierNextEventTimeEmpty(t *testing.T) {
	d := devs.NewDoubleDomain()
	f := New[float64](d)
	if got := f.NextEventTime(d); got != d.Inf() {
		t.Fatalf("NextEventTime() on empty queue = %v, want Inf", got)
	}
}

func TestFrontierImminentStableOrder(t *testing.T) {
	d := devs.NewDoubleDomain()
	f := New[float64](d)
	f.Upsert("c", 1)
	f.Upsert("a", 1)
	f.Upsert("b", 1)
	f.Upsert("z", 2)

	imminent := f.Imminent(1, d)
	want := []string{"a", "b", "c"}
	if len(imminent) != len(want) {
		t.Fatalf("Imminent() = %v, want %v", imminent, want)
	}
	for i := range want {
		if imminent[i] != want[i] {
			t.Fatalf("Imminent() = %v, want %v", imminent, want)
		}
	}
}

func TestFrontierHas(t *testing.T) {
	f := New[float64](devs.NewDoubleDomain())
	if f.Has("a") {
		t.Fatal("Has(a) should be false before insert")
	}
	f.Upsert("a", 1)
	if !f.Has("a") {
		t.Fatal("Has(a) should be true after insert")
	}
}
