package viewmodel

import (
	"fmt"

	"github.com/rs/zerolog"

	"sosa_resort/internal/adapters/observability"
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient user notification (a toast).
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
}

type Notifier interface {
	Notify(Notice) error
}

type NotifierFunc func(Notice) error

func (f NotifierFunc) Notify(n Notice) error { return f(n) }

// Delivery records whether a notice reached the user.
type Delivery struct {
	Delivered bool
	Err       error
}

// Deliver hands n to the notifier. A missing, failing or panicking notifier
// never affects the operation that produced the notice.
func Deliver(to Notifier, n Notice) (d Delivery) {
	if to == nil {
		observability.ObserveNotification(string(n.Kind), "dropped")
		return Delivery{}
	}
	defer func() {
		if r := recover(); r != nil {
			d = Delivery{Err: fmt.Errorf("notifier panic: %v", r)}
		}
		outcome := "delivered"
		if !d.Delivered {
			outcome = "failed"
		}
		observability.ObserveNotification(string(n.Kind), outcome)
	}()
	if err := to.Notify(n); err != nil {
		return Delivery{Err: err}
	}
	return Delivery{Delivered: true}
}

// LogNotifier writes notices to a zerolog logger; used by headless callers.
type LogNotifier struct{ L zerolog.Logger }

func (n LogNotifier) Notify(x Notice) error {
	ev := n.L.Info()
	if x.Kind == NoticeError {
		ev = n.L.Warn()
	}
	ev.Str("kind", string(x.Kind)).Str("title", x.Title).Msg(x.Message)
	return nil
}

func errorNotice(msg string) Notice {
	return Notice{Kind: NoticeError, Title: "Error", Message: msg}
}
