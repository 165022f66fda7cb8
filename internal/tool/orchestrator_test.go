package tool

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/compressyourphoto/phototools/internal/model"
)

// fakePipeline records the processing order and fails the filenames
// listed in failOn.
type fakePipeline struct {
	processed []string
	failOn    map[string]bool
}

func (p *fakePipeline) Process(_ context.Context, item model.WorkItem) (Result, error) {
	p.processed = append(p.processed, item.Filename)
	if p.failOn[item.Filename] {
		return Result{}, errors.New("boom")
	}
	return Result{
		Data:     []byte("out-" + item.Filename),
		Filename: "out_" + item.Filename,
	}, nil
}

func pendingItem(name string) model.WorkItem {
	return model.NewWorkItem(name, "image/png", []byte("src-"+name))
}

func TestRun_SweepsInOrder(t *testing.T) {
	o := New()
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		o.Add(pendingItem(name))
	}

	p := &fakePipeline{}
	var progress []string
	err := o.Run(context.Background(), p, func(cur, total int) {
		progress = append(progress, fmt.Sprintf("%d/%d", cur, total))
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a.png", "b.png", "c.png"}
	if len(p.processed) != len(want) {
		t.Fatalf("expected %d processed, got %d", len(want), len(p.processed))
	}
	for i, name := range want {
		if p.processed[i] != name {
			t.Errorf("position %d: expected %s, got %s", i, name, p.processed[i])
		}
	}

	wantProgress := []string{"1/3", "2/3", "3/3"}
	for i, s := range wantProgress {
		if progress[i] != s {
			t.Errorf("progress %d: expected %s, got %s", i, s, progress[i])
		}
	}

	for _, it := range o.Items() {
		if it.Status != model.StatusDone {
			t.Errorf("%s: expected done, got %s", it.Filename, it.Status)
		}
		if it.OutputName != "out_"+it.Filename {
			t.Errorf("%s: unexpected output name %q", it.Filename, it.OutputName)
		}
		if it.OutputSize != len(it.Output) {
			t.Errorf("%s: output size %d does not match payload %d", it.Filename, it.OutputSize, len(it.Output))
		}
	}
}

func TestRun_FailureDoesNotAbortBatch(t *testing.T) {
	o := New()
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		o.Add(pendingItem(name))
	}

	p := &fakePipeline{failOn: map[string]bool{"b.png": true}}
	if err := o.Run(context.Background(), p, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := o.Items()
	if items[0].Status != model.StatusDone || items[2].Status != model.StatusDone {
		t.Error("items around the failure should complete")
	}
	if items[1].Status != model.StatusError {
		t.Fatalf("expected error status, got %s", items[1].Status)
	}
	if items[1].ErrMessage == "" {
		t.Error("failed item must carry an error message")
	}
	if items[1].Output != nil || items[1].OutputSize != 0 {
		t.Error("failed item must not carry an output")
	}

	if got := len(o.Done()); got != 2 {
		t.Errorf("expected 2 done items, got %d", got)
	}
}

func TestRun_ErroredItemsAreReEligible(t *testing.T) {
	o := New()
	o.Add(pendingItem("a.png"))

	fail := &fakePipeline{failOn: map[string]bool{"a.png": true}}
	if err := o.Run(context.Background(), fail, nil); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if o.Items()[0].Status != model.StatusError {
		t.Fatalf("expected error after first run, got %s", o.Items()[0].Status)
	}
	if o.PendingCount() != 1 {
		t.Fatalf("errored item must count as pending, got %d", o.PendingCount())
	}

	ok := &fakePipeline{}
	if err := o.Run(context.Background(), ok, nil); err != nil {
		t.Fatalf("second run: %v", err)
	}

	it := o.Items()[0]
	if it.Status != model.StatusDone {
		t.Fatalf("expected done after retry, got %s", it.Status)
	}
	if it.ErrMessage != "" {
		t.Errorf("error message must be cleared on retry, got %q", it.ErrMessage)
	}
}

func TestRun_DoneItemsAreSkipped(t *testing.T) {
	o := New()
	o.Add(pendingItem("a.png"))

	p := &fakePipeline{}
	if err := o.Run(context.Background(), p, nil); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := o.Run(context.Background(), p, nil); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(p.processed) != 1 {
		t.Errorf("done item must not be reprocessed, saw %d calls", len(p.processed))
	}
}

func TestRun_CancelledContextStopsSweep(t *testing.T) {
	o := New()
	o.Add(pendingItem("a.png"))
	o.Add(pendingItem("b.png"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := o.Run(ctx, &fakePipeline{}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	for _, it := range o.Items() {
		if it.Status != model.StatusPending {
			t.Errorf("%s: untouched item should stay pending, got %s", it.Filename, it.Status)
		}
	}
}

func TestRemoveAndClear(t *testing.T) {
	o := New()
	a := pendingItem("a.png")
	b := pendingItem("b.png")
	o.Add(a)
	o.Add(b)

	o.Remove(a.ID)
	items := o.Items()
	if len(items) != 1 || items[0].ID != b.ID {
		t.Fatalf("expected only b to remain, got %d items", len(items))
	}

	o.Clear()
	if len(o.Items()) != 0 {
		t.Error("clear must discard all items")
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo"},
		{"archive.tar.gz", "archive.tar"},
		{"noext", "noext"},
		{".hidden", ".hidden"},
	}

	for _, tt := range tests {
		if got := baseName(tt.in); got != tt.want {
			t.Errorf("baseName(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
