package main

import (
	"context"

	"github.com/jrsteele09/go-rider-auth/internal/config"
	"github.com/jrsteele09/go-rider-auth/internal/errors"
	"github.com/jrsteele09/go-rider-auth/internal/utils"
	"github.com/jrsteele09/go-rider-auth/rides"
	"github.com/jrsteele09/go-rider-auth/token"
	"github.com/rs/zerolog/log"
)

// consoleView prints what a ride request button would show.
type consoleView struct{}

func (consoleView) ShowTimeEstimate(e rides.TimeEstimate) {
	log.Info().Str("product", e.DisplayName).Int("eta_seconds", e.Estimate).Msg("pickup time")
}

func (consoleView) ShowPriceEstimate(e rides.PriceEstimate) {
	log.Info().
		Str("product", e.DisplayName).
		Str("estimate", e.Estimate).
		Float64("low", utils.Value(e.LowEstimate)).
		Float64("high", utils.Value(e.HighEstimate)).
		Str("currency", e.CurrencyCode).
		Msg("price")
}

func (consoleView) ClearTimeEstimate()  {}
func (consoleView) ClearPriceEstimate() {}

type consoleCallback struct{}

func (consoleCallback) OnRideInformationLoaded() {
	log.Info().Msg("ride information loaded")
}

func (consoleCallback) OnError(err error) {
	log.Err(err).Msg("ride estimate failed")
}

func rideParameters(c config.Config) (rides.RideParameters, error) {
	pickup := c.GetPickup()
	if c.GetProductID() == "" || len(pickup) != 2 {
		return rides.RideParameters{}, errors.Wrapf(errors.ErrInvalidConfig, "RIDERAUTH_PRODUCT_ID and RIDERAUTH_PICKUP are required for estimates")
	}
	params := rides.RideParameters{
		ProductID:       c.GetProductID(),
		PickupLatitude:  utils.Ptr(pickup[0]),
		PickupLongitude: utils.Ptr(pickup[1]),
	}
	if dropoff := c.GetDropoff(); len(dropoff) == 2 {
		params.DropoffLatitude = utils.Ptr(dropoff[0])
		params.DropoffLongitude = utils.Ptr(dropoff[1])
	}
	return params, nil
}

func showEstimates(ctx context.Context, c config.Config, tok *token.AccessToken) error {
	params, err := rideParameters(c)
	if err != nil {
		return err
	}
	opts := []rides.ClientOption{rides.WithRegion(c.GetRegion())}
	if base := c.GetAPIBaseURL(); base != "" {
		opts = append(opts, rides.WithBaseURL(base))
	}
	controller := rides.NewButtonController(consoleView{}, rides.NewClient(ctx, tok.Token, opts...), consoleCallback{})
	defer controller.Destroy()

	if err := controller.LoadRideInformation(ctx, params); err != nil {
		return err
	}
	return controller.Wait()
}
