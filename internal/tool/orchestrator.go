// Package tool contains the per-tool pipelines and the orchestrator
// that drives work items through them.
package tool

import (
	"context"

	"github.com/compressyourphoto/phototools/internal/model"
)

// Result is the derived output of a single transform.
type Result struct {
	Data     []byte
	Filename string
	NewDims  *model.Dimensions
}

// Pipeline is one tool's transform for a single work item.
type Pipeline interface {
	Process(ctx context.Context, item model.WorkItem) (Result, error)
}

// ProgressFunc receives the 1-based position within the current batch.
type ProgressFunc func(current, total int)

// Orchestrator owns the ordered work-item list for one tool session and
// runs batches over it. Items are processed strictly one at a time; all
// mutation happens inside the orchestrator, so no locking is needed.
type Orchestrator struct {
	items []model.WorkItem
}

// New creates an empty orchestrator.
func New() *Orchestrator {
	return &Orchestrator{}
}

// Add appends an item to the end of the list.
func (o *Orchestrator) Add(item model.WorkItem) {
	o.items = append(o.items, item)
}

// Items returns a copy of the current list.
func (o *Orchestrator) Items() []model.WorkItem {
	out := make([]model.WorkItem, len(o.items))
	copy(out, o.items)
	return out
}

// Remove deletes the item with the given id, if present.
func (o *Orchestrator) Remove(id string) {
	for i, it := range o.items {
		if it.ID == id {
			o.items = append(o.items[:i], o.items[i+1:]...)
			return
		}
	}
}

// Clear discards the entire list.
func (o *Orchestrator) Clear() {
	o.items = nil
}

// PendingCount reports how many items a batch run would sweep: pending
// items plus failed ones, which are re-eligible on the next run.
func (o *Orchestrator) PendingCount() int {
	n := 0
	for _, it := range o.items {
		if it.Status == model.StatusPending || it.Status == model.StatusError {
			n++
		}
	}
	return n
}

// Done returns the completed items in list order.
func (o *Orchestrator) Done() []model.WorkItem {
	var out []model.WorkItem
	for _, it := range o.items {
		if it.Status == model.StatusDone {
			out = append(out, it)
		}
	}
	return out
}

// Run sweeps every item that is pending or errored at the moment of the
// call, in list order, through the pipeline. Each item transitions
// pending -> processing -> done/error independently: a failure is
// recorded on the item and never aborts the batch. Items added while a
// batch is running are not part of that batch's sweep. Cancelling the
// context stops the sweep after the in-flight item; untouched items
// stay pending.
func (o *Orchestrator) Run(ctx context.Context, p Pipeline, progress ProgressFunc) error {
	var batch []string
	for _, it := range o.items {
		if it.Status == model.StatusPending || it.Status == model.StatusError {
			batch = append(batch, it.ID)
		}
	}

	for i, id := range batch {
		if err := ctx.Err(); err != nil {
			return err
		}

		if progress != nil {
			progress(i+1, len(batch))
		}

		idx := o.indexOf(id)
		if idx < 0 {
			continue // removed mid-batch
		}

		o.items[idx].Status = model.StatusProcessing
		o.items[idx].ErrMessage = ""

		res, err := p.Process(ctx, o.items[idx])
		if err != nil {
			o.items[idx].Status = model.StatusError
			o.items[idx].ErrMessage = err.Error()
			o.items[idx].Output = nil
			o.items[idx].OutputSize = 0
			continue
		}

		o.items[idx].Status = model.StatusDone
		o.items[idx].Output = res.Data
		o.items[idx].OutputSize = len(res.Data)
		o.items[idx].OutputName = res.Filename
		if res.NewDims != nil {
			o.items[idx].NewDims = res.NewDims
		}
	}

	return nil
}

func (o *Orchestrator) indexOf(id string) int {
	for i, it := range o.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// baseName strips the final extension from a filename.
func baseName(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		switch name[i] {
		case '.':
			if i == 0 {
				return name
			}
			return name[:i]
		case '/', '\\':
			return name
		}
	}
	return name
}
