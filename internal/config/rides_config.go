package config

// Rides configures the optional estimate lookup after login.
type Rides struct {
	APIBaseURL string    `env:"RIDERAUTH_API_BASE_URL"`
	ProductID  string    `env:"RIDERAUTH_PRODUCT_ID"`
	Pickup     []float64 `env:"RIDERAUTH_PICKUP" envSeparator:","`
	Dropoff    []float64 `env:"RIDERAUTH_DROPOFF" envSeparator:","`
}

var _ RidesConfig = Rides{}

func (r Rides) GetAPIBaseURL() string {
	return r.APIBaseURL
}

func (r Rides) GetProductID() string {
	return r.ProductID
}

func (r Rides) GetPickup() []float64 {
	return append([]float64(nil), r.Pickup...)
}

func (r Rides) GetDropoff() []float64 {
	return append([]float64(nil), r.Dropoff...)
}
