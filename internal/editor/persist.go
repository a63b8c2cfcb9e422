package editor

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"room-editor/internal/layout"
)

// Save snapshots the layout now and stores it in the background.
// The outcome is reported through the notifier on a later Pump.
func (e *Editor) Save() {
	records := e.Snapshot()
	e.log.WithField("items", len(records)).Debug("saving layout")
	e.spawn(func() {
		ctx, cancel := context.WithTimeout(context.Background(), e.opts.Timeout)
		defer cancel()
		err := e.store.SaveLayout(ctx, records)
		e.post(func() { e.finishSave(len(records), err) })
	})
}

func (e *Editor) finishSave(n int, err error) {
	if err != nil {
		e.log.WithError(err).Error("save failed")
		e.tell(fmt.Sprintf("Save failed: %v", err), true)
		return
	}
	e.log.WithField("items", n).Info("layout saved")
	e.tell(fmt.Sprintf("Saved %d items", n), false)
}

// Load fetches the stored layout in the background and applies it on a later Pump.
// A failed fetch or an empty layout falls back to the default layout.
func (e *Editor) Load() {
	e.log.Debug("loading layout")
	e.spawn(func() {
		ctx, cancel := context.WithTimeout(context.Background(), e.opts.Timeout)
		defer cancel()
		records, err := e.store.LoadLayout(ctx)
		e.post(func() { e.finishLoad(records, err) })
	})
}

func (e *Editor) finishLoad(records []layout.Record, err error) {
	if err != nil {
		e.log.WithError(err).Warn("load failed, using default layout")
		e.tell(fmt.Sprintf("Load failed, starting with the default room: %v", err), true)
		records = nil
	}
	if applyErr := e.ApplyLayout(context.Background(), records); applyErr != nil {
		e.log.WithError(applyErr).Warn("layout applied with errors")
		e.tell(fmt.Sprintf("Some items could not be restored: %v", applyErr), true)
		return
	}
	if err == nil {
		e.log.WithFields(logrus.Fields{"items": len(e.reg.Items())}).Info("layout loaded")
		e.tell(fmt.Sprintf("Loaded %d items", len(e.reg.Items())), false)
	}
}

// post queues f for the next Pump. It is safe to call from any goroutine.
func (e *Editor) post(f func()) {
	e.mu.Lock()
	e.inbox = append(e.inbox, f)
	e.mu.Unlock()
}

// Pump runs every completion queued since the last call and reports how many ran.
func (e *Editor) Pump() int {
	e.mu.Lock()
	pending := e.inbox
	e.inbox = nil
	e.mu.Unlock()
	for _, f := range pending {
		f()
	}
	return len(pending)
}

func (e *Editor) tell(msg string, failed bool) {
	if e.notify != nil {
		e.notify.Notify(msg, failed)
	}
}
