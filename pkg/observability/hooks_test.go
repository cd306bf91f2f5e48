package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Config hooks
	c := NoopConfigHooks{}
	c.OnConfigLoad(ctx, "config.yaml", 3, 2, time.Millisecond, nil)

	// Batch hooks
	b := NoopBatchHooks{}
	b.OnBatchStart(ctx, "run", 4)
	b.OnLoad(ctx, "svc.json", "component", time.Millisecond, nil)
	b.OnEmit(ctx, "svc.json", "svc.json.dot", 128, time.Millisecond, errors.New("disk full"))
	b.OnBatchComplete(ctx, "run", 2, 1, 1, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Config().(NoopConfigHooks); !ok {
		t.Error("Config() should return NoopConfigHooks by default")
	}
	if _, ok := Batch().(NoopBatchHooks); !ok {
		t.Error("Batch() should return NoopBatchHooks by default")
	}

	// Set custom hooks
	customConfig := &testConfigHooks{}
	SetConfigHooks(customConfig)
	if Config() != customConfig {
		t.Error("SetConfigHooks should set custom hooks")
	}

	customBatch := &testBatchHooks{}
	SetBatchHooks(customBatch)
	if Batch() != customBatch {
		t.Error("SetBatchHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Batch().(NoopBatchHooks); !ok {
		t.Error("Reset() should restore NoopBatchHooks")
	}
	if _, ok := Config().(NoopConfigHooks); !ok {
		t.Error("Reset() should restore NoopConfigHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testBatchHooks{}
	SetBatchHooks(custom)

	// Setting nil should be ignored
	SetBatchHooks(nil)

	if Batch() != custom {
		t.Error("SetBatchHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testConfigHooks struct{ NoopConfigHooks }
type testBatchHooks struct{ NoopBatchHooks }
