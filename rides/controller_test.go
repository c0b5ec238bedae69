package rides_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-rider-auth/rides"
	"github.com/stretchr/testify/require"
)

const (
	testProductID = "a1111c8c-c720-46c3-8534-2fcdd730040d"
	waitTimeout   = 2 * time.Second
	tick          = 10 * time.Millisecond
)

var errTransport = errors.New("connection reset by peer")

type timeReply struct {
	estimates []rides.TimeEstimate
	err       error
}

type priceReply struct {
	estimates []rides.PriceEstimate
	err       error
}

// gatedService blocks each call until the test releases its reply, so the
// completion order is under the test's control.
type gatedService struct {
	times  chan timeReply
	prices chan priceReply

	mu         sync.Mutex
	priceCalls int
}

func newGatedService() *gatedService {
	return &gatedService{times: make(chan timeReply, 1), prices: make(chan priceReply, 1)}
}

func (s *gatedService) TimeEstimates(ctx context.Context, _, _ float64, _ string) ([]rides.TimeEstimate, error) {
	select {
	case r := <-s.times:
		if ctx.Err() != nil {
			s.times <- r
			return nil, ctx.Err()
		}
		return r.estimates, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *gatedService) PriceEstimates(ctx context.Context, _, _, _, _ float64) ([]rides.PriceEstimate, error) {
	s.mu.Lock()
	s.priceCalls++
	s.mu.Unlock()
	select {
	case r := <-s.prices:
		if ctx.Err() != nil {
			s.prices <- r
			return nil, ctx.Err()
		}
		return r.estimates, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type fakeView struct {
	mu           sync.Mutex
	times        []rides.TimeEstimate
	prices       []rides.PriceEstimate
	timeCleared  int
	priceCleared int
}

func (v *fakeView) ShowTimeEstimate(e rides.TimeEstimate)   { v.mu.Lock(); v.times = append(v.times, e); v.mu.Unlock() }
func (v *fakeView) ShowPriceEstimate(e rides.PriceEstimate) { v.mu.Lock(); v.prices = append(v.prices, e); v.mu.Unlock() }
func (v *fakeView) ClearTimeEstimate()                      { v.mu.Lock(); v.timeCleared++; v.mu.Unlock() }
func (v *fakeView) ClearPriceEstimate()                     { v.mu.Lock(); v.priceCleared++; v.mu.Unlock() }

type fakeCallback struct {
	mu     sync.Mutex
	loaded int
	errs   []error
}

func (c *fakeCallback) OnRideInformationLoaded() { c.mu.Lock(); c.loaded++; c.mu.Unlock() }
func (c *fakeCallback) OnError(err error)         { c.mu.Lock(); c.errs = append(c.errs, err); c.mu.Unlock() }

// controllerFixture holds all test dependencies
type controllerFixture struct {
	service    *gatedService
	view       *fakeView
	callback   *fakeCallback
	controller *rides.ButtonController
}

func setupControllerFixture() *controllerFixture {
	f := &controllerFixture{
		service:  newGatedService(),
		view:     &fakeView{},
		callback: &fakeCallback{},
	}
	f.controller = rides.NewButtonController(f.view, f.service, f.callback)
	return f
}

func fullParams() rides.RideParameters {
	return rides.RideParameters{
		ProductID:        testProductID,
		PickupLatitude:   rides.Coordinate(37.775304),
		PickupLongitude:  rides.Coordinate(-122.417522),
		DropoffLatitude:  rides.Coordinate(37.795079),
		DropoffLongitude: rides.Coordinate(-122.4397805),
	}
}

func timeOK() timeReply {
	return timeReply{estimates: []rides.TimeEstimate{
		{ProductID: "other", Estimate: 60},
		{ProductID: testProductID, DisplayName: "uberX", Estimate: 180},
	}}
}

func priceOK() priceReply {
	return priceReply{estimates: []rides.PriceEstimate{
		{ProductID: testProductID, DisplayName: "uberX", Estimate: "$15-20", CurrencyCode: "USD"},
	}}
}

func TestRideParametersValidate(t *testing.T) {
	p := fullParams()
	require.NoError(t, p.Validate())
	require.True(t, p.HasDropoff())

	noProduct := fullParams()
	noProduct.ProductID = ""
	require.ErrorIs(t, noProduct.Validate(), rides.ErrMissingProductID)

	noPickup := fullParams()
	noPickup.PickupLongitude = nil
	require.ErrorIs(t, noPickup.Validate(), rides.ErrMissingPickup)

	halfDropoff := fullParams()
	halfDropoff.DropoffLongitude = nil
	require.ErrorIs(t, halfDropoff.Validate(), rides.ErrIncompleteDropoff)

	noDropoff := fullParams()
	noDropoff.DropoffLatitude, noDropoff.DropoffLongitude = nil, nil
	require.NoError(t, noDropoff.Validate())
	require.False(t, noDropoff.HasDropoff())
}

func TestLoadRideInformation(t *testing.T) {
	ctx := context.Background()

	t.Run("both succeed time first", func(t *testing.T) {
		f := setupControllerFixture()
		require.NoError(t, f.controller.LoadRideInformation(ctx, fullParams()))
		f.service.times <- timeOK()
		f.service.prices <- priceOK()
		require.NoError(t, f.controller.Wait())

		require.Len(t, f.view.times, 1)
		require.Equal(t, 180, f.view.times[0].Estimate)
		require.Len(t, f.view.prices, 1)
		require.Equal(t, "$15-20", f.view.prices[0].Estimate)
		require.Equal(t, 1, f.callback.loaded)
		require.Empty(t, f.callback.errs)
	})

	t.Run("both succeed price first", func(t *testing.T) {
		f := setupControllerFixture()
		f.service.prices <- priceOK()
		require.NoError(t, f.controller.LoadRideInformation(ctx, fullParams()))
		f.service.times <- timeOK()
		require.NoError(t, f.controller.Wait())
		require.Equal(t, 1, f.callback.loaded)
	})

	t.Run("price fails time succeeds", func(t *testing.T) {
		f := setupControllerFixture()
		apiErr := &rides.APIError{StatusCode: 422, Code: "distance_exceeded", Message: "Distance between two points exceeds 100 miles"}
		f.service.prices <- priceReply{err: apiErr}
		require.NoError(t, f.controller.LoadRideInformation(ctx, fullParams()))

		// Hold the time reply until the price failure has landed.
		require.Eventually(t, func() bool {
			f.callback.mu.Lock()
			defer f.callback.mu.Unlock()
			return len(f.callback.errs) == 1
		}, waitTimeout, tick)
		f.service.times <- timeOK()
		require.ErrorIs(t, f.controller.Wait(), apiErr)

		require.Len(t, f.callback.errs, 1)
		var got *rides.APIError
		require.ErrorAs(t, f.callback.errs[0], &got)
		require.Equal(t, "distance_exceeded", got.Code)
		require.Zero(t, f.callback.loaded)
		require.Equal(t, 1, f.view.priceCleared)
		require.Len(t, f.view.times, 1)
	})

	t.Run("time transport failure", func(t *testing.T) {
		f := setupControllerFixture()
		params := fullParams()
		params.DropoffLatitude, params.DropoffLongitude = nil, nil
		require.NoError(t, f.controller.LoadRideInformation(ctx, params))
		f.service.times <- timeReply{err: errTransport}
		require.ErrorIs(t, f.controller.Wait(), errTransport)

		require.Equal(t, []error{errTransport}, f.callback.errs)
		require.Equal(t, 1, f.view.timeCleared)
		require.Zero(t, f.callback.loaded)
		require.Zero(t, f.service.priceCalls)
	})

	t.Run("time only", func(t *testing.T) {
		f := setupControllerFixture()
		params := fullParams()
		params.DropoffLatitude, params.DropoffLongitude = nil, nil
		require.NoError(t, f.controller.LoadRideInformation(ctx, params))
		f.service.times <- timeOK()
		require.NoError(t, f.controller.Wait())
		require.Equal(t, 1, f.callback.loaded)
		require.Empty(t, f.view.prices)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := setupControllerFixture()
		params := fullParams()
		params.DropoffLatitude, params.DropoffLongitude = nil, nil
		require.NoError(t, f.controller.LoadRideInformation(ctx, params))
		f.service.times <- timeReply{estimates: []rides.TimeEstimate{{ProductID: "other", Estimate: 60}}}
		require.Error(t, f.controller.Wait())

		require.Len(t, f.callback.errs, 1)
		var got *rides.APIError
		require.ErrorAs(t, f.callback.errs[0], &got)
		require.Equal(t, 404, got.StatusCode)
		require.Empty(t, f.view.times)
	})

	t.Run("invalid parameters", func(t *testing.T) {
		f := setupControllerFixture()
		params := fullParams()
		params.PickupLatitude = nil
		require.ErrorIs(t, f.controller.LoadRideInformation(ctx, params), rides.ErrMissingPickup)
	})

	t.Run("reload cancels the previous calls", func(t *testing.T) {
		f := setupControllerFixture()
		require.NoError(t, f.controller.LoadRideInformation(ctx, fullParams()))
		require.NoError(t, f.controller.LoadRideInformation(ctx, fullParams()))
		f.service.times <- timeOK()
		f.service.prices <- priceOK()
		require.NoError(t, f.controller.Wait())

		require.Equal(t, 1, f.callback.loaded)
		require.Empty(t, f.callback.errs)
	})
}

func TestDestroy(t *testing.T) {
	f := setupControllerFixture()
	require.NoError(t, f.controller.LoadRideInformation(context.Background(), fullParams()))
	f.controller.Destroy()
	require.Error(t, f.controller.Wait())

	require.Empty(t, f.view.times)
	require.Empty(t, f.view.prices)
	require.Zero(t, f.callback.loaded)
	require.Empty(t, f.callback.errs)

	require.ErrorIs(t, f.controller.LoadRideInformation(context.Background(), fullParams()), rides.ErrControllerReleased)
}
