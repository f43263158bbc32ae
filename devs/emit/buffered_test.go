package emit

import (
	"context"
	"testing"

	"github.com/dshills/devs-go/devs"
)

func TestBufferedListenerHistory(t *testing.T) {
	b := NewBufferedListener[string, float64]()
	p := devs.NewPin()

	b.Notify(Event[string, float64]{RunID: "run-1", Kind: Output, ModelID: "A", Pin: p, Value: "x", Time: 1})
	b.Notify(Event[string, float64]{RunID: "run-1", Kind: StateChange, ModelID: "A", Time: 1})
	b.Notify(Event[string, float64]{RunID: "run-2", Kind: Output, ModelID: "B", Time: 2})

	hist1 := b.History("run-1")
	if len(hist1) != 2 {
		t.Fatalf("History(run-1) = %d events, want 2", len(hist1))
	}
	hist2 := b.History("run-2")
	if len(hist2) != 1 {
		t.Fatalf("History(run-2) = %d events, want 1", len(hist2))
	}
}

func TestBufferedListenerCountKind(t *testing.T) {
	b := NewBufferedListener[string, float64]()
	b.Notify(Event[string, float64]{RunID: "r", Kind: Output, ModelID: "A"})
	b.Notify(Event[string, float64]{RunID: "r", Kind: Output, ModelID: "B"})
	b.Notify(Event[string, float64]{RunID: "r", Kind: StateChange, ModelID: "A"})

	if n := b.CountKind("r", Output); n != 2 {
		t.Errorf("CountKind(Output) = %d, want 2", n)
	}
	if n := b.CountKind("r", StateChange); n != 1 {
		t.Errorf("CountKind(StateChange) = %d, want 1", n)
	}
	if n := b.CountKind("r", Input); n != 0 {
		t.Errorf("CountKind(Input) = %d, want 0", n)
	}
}

func TestBufferedListenerNotifyBatch(t *testing.T) {
	b := NewBufferedListener[string, float64]()
	events := []Event[string, float64]{
		{RunID: "r", Kind: Output, ModelID: "A"},
		{RunID: "r", Kind: Input, ModelID: "B"},
	}
	if err := b.NotifyBatch(context.Background(), events); err != nil {
		t.Fatalf("NotifyBatch returned error: %v", err)
	}
	if len(b.History("r")) != 2 {
		t.Fatalf("History(r) = %d, want 2 after NotifyBatch", len(b.History("r")))
	}
}

func TestBufferedListenerClear(t *testing.T) {
	b := NewBufferedListener[string, float64]()
	b.Notify(Event[string, float64]{RunID: "r1", Kind: Output})
	b.Notify(Event[string, float64]{RunID: "r2", Kind: Output})

	b.Clear("r1")
	if len(b.History("r1")) != 0 {
		t.Errorf("History(r1) should be empty after Clear(r1)")
	}
	if len(b.History("r2")) != 1 {
		t.Errorf("History(r2) should survive Clear(r1)")
	}

	b.Clear("")
	if len(b.History("r2")) != 0 {
		t.Errorf("History(r2) should be empty after Clear(\"\")")
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		Output:      "output",
		Input:       "input",
		StateChange: "state_change",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestNullListener(t *testing.T) {
	n := NewNullListener[string, float64]()
	n.Notify(Event[string, float64]{})
	if err := n.NotifyBatch(context.Background(), nil); err != nil {
		t.Errorf("NullListener.NotifyBatch returned error: %v", err)
	}
	if err := n.Flush(context.Background()); err != nil {
		t.Errorf("NullListener.Flush returned error: %v", err)
	}
}
