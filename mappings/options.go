package mappings

import (
	"github.com/rpupo63/portfolio-admin/notify"
)

type options struct {
	notifier notify.Notifier
	signal   *notify.Signal
}

type Option func(*options)

func WithNotifier(n notify.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// WithSignal fires the parent collection's signal after every mutation so
// its list reloads.
func WithSignal(signal *notify.Signal) Option {
	return func(o *options) {
		o.signal = signal
	}
}

func buildOptions(opts []Option) options {
	o := options{notifier: notify.NewLogNotifier()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
