package emit

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogListenerTextMode(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogListener[string, float64](&buf, false)

	l.Notify(Event[string, float64]{RunID: "r", Step: 1, Kind: Output, ModelID: "A", Value: "ping", Time: 2.5})

	out := buf.String()
	if !strings.Contains(out, "[output]") || !strings.Contains(out, "model=A") || !strings.Contains(out, "value=ping") {
		t.Fatalf("text output missing expected fields: %q", out)
	}
}

func TestLogListenerTextModeOmitsValueForStateChange(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogListener[string, float64](&buf, false)

	l.Notify(Event[string, float64]{Kind: StateChange, ModelID: "A"})

	out := buf.String()
	if strings.Contains(out, "value=") {
		t.Fatalf("state_change line should omit pin/value, got %q", out)
	}
}

func TestLogListenerJSONMode(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogListener[string, float64](&buf, true)

	l.Notify(Event[string, float64]{RunID: "r", ModelID: "A", Kind: Input, Value: "hello"})

	out := buf.String()
	if !strings.Contains(out, `"model_id":"A"`) || !strings.Contains(out, `"kind":"input"`) {
		t.Fatalf("json output missing expected fields: %q", out)
	}
}

func TestLogListenerDefaultsToStdoutOnNilWriter(t *testing.T) {
	l := NewLogListener[string, float64](nil, false)
	if l.writer == nil {
		t.Fatal("nil writer should default to os.Stdout, got nil")
	}
}
