package emit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LogListener writes structured log output to a writer, in text or JSONL
// form — the same two modes as the teacher's emit.LogEmitter.
type LogListener[V any, T any] struct {
	writer   io.Writer
	jsonMode bool
}

// NewLogListener constructs a LogListener. A nil writer defaults to
// os.Stdout.
func NewLogListener[V any, T any](writer io.Writer, jsonMode bool) *LogListener[V, T] {
	if writer == nil {
		writer = os.Stdout
	}
	return &LogListener[V, T]{writer: writer, jsonMode: jsonMode}
}

func (l *LogListener[V, T]) Notify(e Event[V, T]) {
	if l.jsonMode {
		l.emitJSON(e)
	} else {
		l.emitText(e)
	}
}

func (l *LogListener[V, T]) emitJSON(e Event[V, T]) {
	data, err := json.Marshal(struct {
		RunID   string `json:"run_id"`
		Step    int    `json:"step"`
		Kind    string `json:"kind"`
		ModelID string `json:"model_id"`
		Pin     uint64 `json:"pin,omitempty"`
		Value   V      `json:"value,omitempty"`
		Time    T      `json:"time"`
	}{
		RunID:   e.RunID,
		Step:    e.Step,
		Kind:    e.Kind.String(),
		ModelID: e.ModelID,
		Pin:     uint64(e.Pin),
		Value:   e.Value,
		Time:    e.Time,
	})
	if err != nil {
		_, _ = fmt.Fprintf(l.writer, "{\"error\":\"failed to marshal event: %v\"}\n", err)
		return
	}
	_, _ = fmt.Fprintf(l.writer, "%s\n", data)
}

func (l *LogListener[V, T]) emitText(e Event[V, T]) {
	_, _ = fmt.Fprintf(l.writer, "[%s] run=%s step=%d model=%s t=%v", e.Kind, e.RunID, e.Step, e.ModelID, e.Time)
	if e.Kind != StateChange {
		_, _ = fmt.Fprintf(l.writer, " pin=%d value=%v", e.Pin, e.Value)
	}
	_, _ = fmt.Fprint(l.writer, "\n")
}

func (l *LogListener[V, T]) NotifyBatch(_ context.Context, events []Event[V, T]) error {
	for _, e := range events {
		l.Notify(e)
	}
	return nil
}

func (l *LogListener[V, T]) Flush(context.Context) error { return nil }
