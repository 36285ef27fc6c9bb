package graph

import (
	"context"
	"testing"
)

func TestMemorySaverRoundTrip(t *testing.T) {
	saver := NewMemorySaver[testState]()
	ctx := context.Background()

	if _, found, err := saver.Load(ctx, "missing"); err != nil || found {
		t.Fatalf("Load(missing) = found=%v err=%v, want absent", found, err)
	}

	in := testState{Log: []string{"hello", "world"}}
	if err := saver.Save(ctx, "key", in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out, found, err := saver.Load(ctx, "key")
	if err != nil || !found {
		t.Fatalf("Load() = found=%v err=%v, want present", found, err)
	}
	if len(out.Log) != 2 || out.Log[0] != "hello" || out.Log[1] != "world" {
		t.Errorf("Load() = %v, want %v", out.Log, in.Log)
	}

	// Read-your-writes: an overwrite is observed immediately.
	if err := saver.Save(ctx, "key", testState{Log: []string{"v2"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	out, _, _ = saver.Load(ctx, "key")
	if len(out.Log) != 1 || out.Log[0] != "v2" {
		t.Errorf("Load() after overwrite = %v, want [v2]", out.Log)
	}
}
