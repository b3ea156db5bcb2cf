package ui

import (
	"io"
	"sync"

	"github.com/kenjikellens/ivids-core/internal/i18n"
	"github.com/kenjikellens/ivids-core/internal/ports"
)

// UpdateObserver renders updater notifications on a terminal: a spinner for
// progress steps and one line for each outcome.
type UpdateObserver struct {
	mu      sync.Mutex
	out     io.Writer
	trans   *i18n.Translations
	spinner *SmartSpinner
}

var _ ports.UpdateObserver = (*UpdateObserver)(nil)

func NewUpdateObserver(out io.Writer, trans *i18n.Translations) *UpdateObserver {
	return &UpdateObserver{
		out:     out,
		trans:   trans,
		spinner: NewSmartSpinner(out, ""),
	}
}

func (o *UpdateObserver) OnUpdateStatus(key string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.spinner.UpdateMessage(o.trans.StatusMessage(key))
	o.spinner.Start()
}

func (o *UpdateObserver) OnUpdateFound(version string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.spinner.Stop()
	PrintSuccess(o.out, o.trans.GetMessage("update.found", 0, map[string]interface{}{
		"Version": version,
	}))
}

func (o *UpdateObserver) OnNoUpdateFound() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.spinner.Stop()
	PrintInfo(o.out, o.trans.GetMessage("update.none", 0, nil))
}

func (o *UpdateObserver) OnUpdateCheckError() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.spinner.Stop()
	PrintError(o.out, o.trans.GetMessage("update.error", 0, nil))
}

func (o *UpdateObserver) OnUpdateProgress(percent int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.spinner.UpdateMessage(o.trans.GetMessage("update.progress", 0, map[string]interface{}{
		"Percent": percent,
	}))
}

// Finish stops the spinner once the host stops listening.
func (o *UpdateObserver) Finish() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.spinner.Stop()
}
