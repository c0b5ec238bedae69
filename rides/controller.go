package rides

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// View renders the estimates on a ride request button.
type View interface {
	ShowTimeEstimate(estimate TimeEstimate)
	ShowPriceEstimate(estimate PriceEstimate)
	ClearTimeEstimate()
	ClearPriceEstimate()
}

// Callback is told when the button content is ready or a call failed. An
// API failure arrives as *APIError, anything else is a transport error.
type Callback interface {
	OnRideInformationLoaded()
	OnError(err error)
}

// ButtonController loads time and price estimates for a button and merges
// the two completions. View and Callback methods are invoked with the
// controller's lock held and must not call back into it.
type ButtonController struct {
	service Service

	mu           sync.Mutex
	view         View
	callback     Callback
	generation   uint64
	timePending  bool
	pricePending bool
	cancel       context.CancelFunc
	group        *errgroup.Group
}

// NewButtonController returns a controller drawing on view. callback may be
// nil.
func NewButtonController(view View, service Service, callback Callback) *ButtonController {
	return &ButtonController{
		service:  service,
		view:     view,
		callback: callback,
	}
}

// LoadRideInformation cancels any calls in flight and starts a time
// estimate, plus a price estimate when params has a dropoff.
func (c *ButtonController) LoadRideInformation(ctx context.Context, params RideParameters) error {
	if err := params.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view == nil {
		return ErrControllerReleased
	}
	c.cancelLocked()

	callCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.generation++
	gen := c.generation
	c.timePending = true
	c.pricePending = params.HasDropoff()

	g := &errgroup.Group{}
	c.group = g

	g.Go(func() error {
		estimates, err := c.service.TimeEstimates(callCtx, *params.PickupLatitude, *params.PickupLongitude, params.ProductID)
		return c.onTimeResult(gen, params.ProductID, estimates, err)
	})
	if params.HasDropoff() {
		g.Go(func() error {
			estimates, err := c.service.PriceEstimates(callCtx,
				*params.PickupLatitude, *params.PickupLongitude,
				*params.DropoffLatitude, *params.DropoffLongitude)
			return c.onPriceResult(gen, params.ProductID, estimates, err)
		})
	}
	return nil
}

// Wait blocks until the calls started by the last LoadRideInformation have
// returned, and reports the first error among them.
func (c *ButtonController) Wait() error {
	c.mu.Lock()
	g := c.group
	c.mu.Unlock()
	if g == nil {
		return nil
	}
	return g.Wait()
}

// Destroy releases the view and callback and cancels in-flight calls. Late
// completions are dropped.
func (c *ButtonController) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = nil
	c.callback = nil
	c.cancelLocked()
}

func (c *ButtonController) cancelLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	// Outstanding completions compare against this and drop themselves.
	c.generation++
}

func (c *ButtonController) onTimeResult(gen uint64, productID string, estimates []TimeEstimate, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.view == nil {
		return err
	}
	if err == nil {
		estimate, ok := findTimeEstimate(productID, estimates)
		if !ok {
			err = productNotFound(productID)
		} else {
			c.view.ShowTimeEstimate(estimate)
			c.timePending = false
		}
	}
	if err != nil {
		c.view.ClearTimeEstimate()
		c.failLocked(err)
		return err
	}
	c.refreshedLocked()
	return nil
}

func (c *ButtonController) onPriceResult(gen uint64, productID string, estimates []PriceEstimate, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.view == nil {
		return err
	}
	if err == nil {
		estimate, ok := findPriceEstimate(productID, estimates)
		if !ok {
			err = productNotFound(productID)
		} else {
			c.view.ShowPriceEstimate(estimate)
			c.pricePending = false
		}
	}
	if err != nil {
		c.view.ClearPriceEstimate()
		c.failLocked(err)
		return err
	}
	c.refreshedLocked()
	return nil
}

func (c *ButtonController) failLocked(err error) {
	log.Debug().Err(err).Msg("ride estimate failed")
	if c.callback != nil {
		c.callback.OnError(err)
	}
}

func (c *ButtonController) refreshedLocked() {
	if c.timePending || c.pricePending {
		return
	}
	if c.callback != nil {
		c.callback.OnRideInformationLoaded()
	}
}
