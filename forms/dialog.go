package forms

import (
	"context"
	"fmt"
	"sync"

	"github.com/rpupo63/portfolio-admin/errs"
)

// DialogState is what a create/edit dialog shows.
type DialogState struct {
	Open       bool    `json:"open"`
	Payload    Payload `json:"payload,omitempty"`
	Err        string  `json:"error,omitempty"`
	Submitting bool    `json:"submitting"`
}

// Dialog keeps the entered values across failed submissions and closes
// only once the backend accepts them.
type Dialog struct {
	controller *Controller

	mu    sync.Mutex
	state DialogState
}

func NewDialog(controller *Controller) *Dialog {
	return &Dialog{controller: controller}
}

// Open starts editing payload; a blank create variant opens an empty form.
func (d *Dialog) Open(payload Payload) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = DialogState{Open: true, Payload: payload}
}

// Update replaces the entered values while the dialog is open.
func (d *Dialog) Update(payload Payload) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state.Open {
		d.state.Payload = payload
	}
}

func (d *Dialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = DialogState{}
}

func (d *Dialog) State() DialogState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Submit sends the entered values. On failure the values stay and the
// error is shown in the dialog.
func (d *Dialog) Submit(ctx context.Context) (Result, error) {
	d.mu.Lock()
	if !d.state.Open || d.state.Payload == nil {
		d.mu.Unlock()
		return Result{}, errs.NewBadRequestError("dialog is not open")
	}
	if d.state.Submitting {
		d.mu.Unlock()
		return Result{}, errs.NewBadRequestError("submission already in progress")
	}
	payload := d.state.Payload
	d.state.Submitting = true
	d.state.Err = ""
	d.mu.Unlock()

	result, err := d.controller.Submit(ctx, payload)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Submitting = false
	if err != nil {
		_, present := payload.Mode().verb()
		d.state.Err = errs.MessageOr(err, fmt.Sprintf("Failed to %s %s", present, payload.Kind().Info().Singular))
		return result, err
	}
	d.state = DialogState{}
	return result, nil
}
