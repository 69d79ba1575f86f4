package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookit/internal/domain"
)

type fakeBookingAPI struct {
	domain.BookingAPI
	list  []domain.Booking
	calls int
	err   error
}

func (f *fakeBookingAPI) ListBookings(context.Context, domain.BookingQuery) ([]domain.Booking, error) {
	f.calls++
	return f.list, f.err
}

func (f *fakeBookingAPI) UpdateBookingStatus(_ context.Context, id domain.BookingID, upd domain.BookingStatusUpdate) (domain.Booking, error) {
	f.calls++
	return domain.Booking{ID: id, Status: upd.Status}, f.err
}

func (f *fakeBookingAPI) RateBooking(_ context.Context, id domain.BookingID, r domain.BookingRating) (domain.Booking, error) {
	f.calls++
	return domain.Booking{ID: id, Rating: r.Rating}, f.err
}

func (f *fakeBookingAPI) CreateBooking(_ context.Context, req domain.CreateBookingRequest) (domain.Booking, error) {
	f.calls++
	return domain.Booking{ID: "new", Service: req.Service, StartTime: req.StartTime, Status: domain.BookingPending}, f.err
}

func TestList_ThenStatusUpdateReplacesEntry(t *testing.T) {
	api := &fakeBookingAPI{list: []domain.Booking{
		{ID: "b1", Status: domain.BookingPending},
		{ID: "b2", Status: domain.BookingConfirmed},
	}}
	svc := New(api)

	_, err := svc.List(context.Background(), domain.BookingQuery{})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), "b1", domain.BookingStatusUpdate{Status: domain.BookingCancelled})
	require.NoError(t, err)

	got := svc.State().Data
	require.Len(t, got, 2)
	assert.Equal(t, domain.BookingCancelled, got[0].Status)
	assert.Equal(t, domain.BookingConfirmed, got[1].Status)
}

func TestValidationBlocksCalls(t *testing.T) {
	api := &fakeBookingAPI{}
	svc := New(api)

	_, err := svc.UpdateStatus(context.Background(), "b1", domain.BookingStatusUpdate{Status: "archived"})
	assert.Error(t, err)
	_, err = svc.Rate(context.Background(), "b1", domain.BookingRating{Rating: 6})
	assert.Error(t, err)
	_, err = svc.Create(context.Background(), domain.CreateBookingRequest{Service: "s1", Date: time.Now(), StartTime: "9am"})
	assert.Error(t, err)
	assert.Equal(t, 0, api.calls)
}

func TestCreateAndRate(t *testing.T) {
	api := &fakeBookingAPI{}
	svc := New(api)

	b, err := svc.Create(context.Background(), domain.CreateBookingRequest{Service: "s1", Date: time.Now(), StartTime: "09:30"})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)

	_, err = svc.Rate(context.Background(), b.ID, domain.BookingRating{Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, svc.State().Data[0].Rating)
}

func TestServerErrorRecorded(t *testing.T) {
	svc := New(&fakeBookingAPI{err: domain.ErrForbidden})
	_, err := svc.List(context.Background(), domain.BookingQuery{Status: domain.BookingPending})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, "forbidden", svc.State().Error)
	assert.False(t, svc.State().Loading)
}
