package log

import "testing"

func TestWithChainsTags(t *testing.T) {
	l := New("component", "builder")
	l2 := l.With("build_id", "abc123")
	// Neither call should panic; the lines go to stderr through the console
	// writer and are not inspected, so this is a smoke test that the chain
	// is well-formed.
	l2.Debug("merged chunk", "chunk", "a.json")
	l2.Error("validation failed", "count", 2)
}

type fakeTB struct {
	logs, errs, fatals []string
}

func (f *fakeTB) Errorf(format string, args ...interface{}) { f.errs = append(f.errs, format) }
func (f *fakeTB) Fatalf(format string, args ...interface{}) { f.fatals = append(f.fatals, format) }
func (f *fakeTB) Logf(format string, args ...interface{})   { f.logs = append(f.logs, format) }
func (f *fakeTB) Helper()                                   {}

func TestTestLoggerWritesThroughTB(t *testing.T) {
	fb := &fakeTB{}
	tl := NewTest(fb, "suite", "log")
	tl.Debug("hello", "k", "v")
	tl.With("extra", 1).Error("oops")

	if len(fb.logs) != 1 {
		t.Fatalf("expected 1 debug line, got %d", len(fb.logs))
	}
	if len(fb.errs) != 1 {
		t.Fatalf("expected 1 error line, got %d", len(fb.errs))
	}
}
