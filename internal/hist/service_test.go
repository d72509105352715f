package hist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"main/internal/codec"
	"main/internal/schema"
)

type memorySink struct {
	rows   []string
	failed bool
}

func (s *memorySink) Persist(service, key string, fields []string) error {
	if s.failed {
		return errors.New("sink down")
	}
	s.rows = append(s.rows, service+"|"+key+"|"+strings.Join(fields, ","))
	return nil
}

func (s *memorySink) Close() error { return nil }

func TestServicePersistsRenderedRows(t *testing.T) {
	sink := &memorySink{}
	svc, err := NewService("Risk",
		func(pv schema.PV01) string { return pv.ProductID }, codec.PV01Row, sink)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	svc.Persist(schema.PV01{ProductID: "912828V23", PerUnit: 0.019, Quantity: 1_000_000})

	if len(sink.rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(sink.rows))
	}
	want := "Risk|912828V23|912828V23,0.019000,1000000"
	if sink.rows[0] != want {
		t.Fatalf("row = %q, want %q", sink.rows[0], want)
	}

	stored, ok := svc.Get("912828V23")
	if !ok || stored.Quantity != 1_000_000 {
		t.Fatalf("stored record mismatch: %+v ok=%v", stored, ok)
	}
}

func TestServiceSinkFailureDoesNotPropagate(t *testing.T) {
	sink := &memorySink{failed: true}
	svc, err := NewService("Risk",
		func(pv schema.PV01) string { return pv.ProductID }, codec.PV01Row, sink)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	svc.Persist(schema.PV01{ProductID: "912828V23"})
	if _, ok := svc.Get("912828V23"); !ok {
		t.Fatal("value must be stored even when the sink fails")
	}
}

func TestNewServiceRejectsNilArgs(t *testing.T) {
	if _, err := NewService[schema.PV01]("Risk", nil, codec.PV01Row, &memorySink{}); err == nil {
		t.Fatal("expected error for nil key func")
	}
	if _, err := NewService("Risk",
		func(pv schema.PV01) string { return pv.ProductID }, codec.PV01Row, nil); err == nil {
		t.Fatal("expected error for nil sink")
	}
}

func TestFileSinkRoutesByService(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewFileSink(dir)
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}

	if err := sink.Persist("Risk", "912828V23", []string{"912828V23", "0.019000", "1000000"}); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if err := sink.Persist("Position", "912828V23", []string{"912828V23", "TRSY1", "500000"}); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	risk, err := os.ReadFile(filepath.Join(dir, "risk.txt"))
	if err != nil {
		t.Fatalf("read risk.txt: %v", err)
	}
	if string(risk) != "912828V23,0.019000,1000000\n" {
		t.Fatalf("risk.txt = %q", string(risk))
	}
	if _, err := os.Stat(filepath.Join(dir, "position.txt")); err != nil {
		t.Fatalf("position.txt missing: %v", err)
	}
}

func TestFileSinkAppends(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewFileSink(dir)
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	_ = sink.Persist("Risk", "a", []string{"one"})
	_ = sink.Persist("Risk", "b", []string{"two"})
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "risk.txt"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "one\ntwo\n" {
		t.Fatalf("content = %q", string(data))
	}
}
