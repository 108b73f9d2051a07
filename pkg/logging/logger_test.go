package logging

import "testing"

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.Info("should not panic")
	logger.Debugf("should not panic: %d", 1)
	if logger.Level() != LevelDisabled {
		t.Fatalf("expected nil logger to report LevelDisabled, got %s", logger.Level())
	}
	if logger.Sublogger("x") != nil {
		t.Fatal("expected Sublogger on a nil logger to return nil")
	}
}

func TestSubloggerPrefixesChain(t *testing.T) {
	root := NewRootLogger(LevelTrace)
	child := root.Sublogger("a").Sublogger("b")
	if child.prefix != "a.b" {
		t.Fatalf("expected prefix \"a.b\", got %q", child.prefix)
	}
	if child.Level() != LevelTrace {
		t.Fatalf("expected sublogger to inherit parent level, got %s", child.Level())
	}
}

func TestLevelGating(t *testing.T) {
	logger := NewRootLogger(LevelWarn)
	if logger.enabled(LevelDebug) {
		t.Fatal("expected Debug to be disabled at Warn level")
	}
	if !logger.enabled(LevelWarn) {
		t.Fatal("expected Warn to be enabled at Warn level")
	}
	if !logger.enabled(LevelError) {
		t.Fatal("expected Error to be enabled at Warn level")
	}
}
