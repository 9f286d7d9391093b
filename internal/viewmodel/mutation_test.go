package viewmodel_test

import (
	"context"
	"errors"
	"testing"

	"sosa_resort/internal/domain"
	"sosa_resort/internal/viewmodel"
)

type fakeBookings struct {
	err error
}

func (f *fakeBookings) Create(ctx context.Context, req domain.CreateBookingRequest) (domain.Booking, error) {
	if f.err != nil {
		return domain.Booking{}, f.err
	}
	return domain.Booking{ID: 5, CottageID: req.CottageID, Status: domain.BookingPending}, nil
}

func (f *fakeBookings) Confirm(ctx context.Context, id int64) (domain.Booking, error) {
	return domain.Booking{ID: id, Status: domain.BookingConfirmed}, f.err
}

func (f *fakeBookings) Cancel(ctx context.Context, id int64) (domain.Booking, error) {
	return domain.Booking{ID: id, Status: domain.BookingCancelled}, f.err
}

func TestBookingActions_Success(t *testing.T) {
	rec := &recorder{}
	a := viewmodel.NewBookingActions(&fakeBookings{}, rec)

	b, err := a.Create(context.Background(), domain.CreateBookingRequest{CottageID: 3})
	if err != nil || b.ID != 5 {
		t.Fatalf("create: %+v %v", b, err)
	}
	if st := a.State(); st.Loading || st.Error != "" {
		t.Fatalf("unexpected state: %+v", st)
	}
	n := rec.all()
	if len(n) != 1 || n[0].Title != "Success" || n[0].Message != "Booking created successfully!" {
		t.Fatalf("unexpected notices: %+v", n)
	}
}

func TestBookingActions_FailureIsReturned(t *testing.T) {
	rec := &recorder{}
	a := viewmodel.NewBookingActions(&fakeBookings{err: errors.New("nope")}, rec)

	_, err := a.Cancel(context.Background(), 8)
	if err == nil || err.Error() != "nope" {
		t.Fatalf("expected original error, got %v", err)
	}
	if st := a.State(); st.Error != "Failed to cancel booking" {
		t.Fatalf("unexpected state: %+v", st)
	}
	if n := rec.all(); len(n) != 1 || n[0].Kind != viewmodel.NoticeError {
		t.Fatalf("unexpected notices: %+v", n)
	}
}

func TestMutation_NotifierPanicDoesNotLeak(t *testing.T) {
	panicky := viewmodel.NotifierFunc(func(viewmodel.Notice) error { panic("toast unavailable") })
	a := viewmodel.NewBookingActions(&fakeBookings{}, panicky)

	if _, err := a.Confirm(context.Background(), 1); err != nil {
		t.Fatalf("notifier failure must not fail the mutation: %v", err)
	}
}

func TestDeliver(t *testing.T) {
	n := viewmodel.Notice{Kind: viewmodel.NoticeSuccess, Message: "hi"}

	if d := viewmodel.Deliver(nil, n); d.Delivered || d.Err != nil {
		t.Fatalf("nil notifier: %+v", d)
	}
	failing := viewmodel.NotifierFunc(func(viewmodel.Notice) error { return errors.New("closed") })
	if d := viewmodel.Deliver(failing, n); d.Delivered || d.Err == nil {
		t.Fatalf("failing notifier: %+v", d)
	}
	panicky := viewmodel.NotifierFunc(func(viewmodel.Notice) error { panic("x") })
	if d := viewmodel.Deliver(panicky, n); d.Delivered || d.Err == nil {
		t.Fatalf("panicking notifier: %+v", d)
	}
	if d := viewmodel.Deliver(&recorder{}, n); !d.Delivered {
		t.Fatalf("recorder: %+v", d)
	}
}
