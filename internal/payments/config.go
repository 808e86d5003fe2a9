package payments

import (
	"os"
	"strconv"
)

// Config describes which gateways have credentials present. Selection between
// the simulated, Paystack and Stripe flows happens entirely off this.
type Config struct {
	Paystack     bool
	Stripe       bool
	AppURL       string
	NgnToUsdRate float64
}

const defaultNgnToUsdRate = 0.0006

func LoadConfig() Config {
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}

	rate := defaultNgnToUsdRate
	if v := os.Getenv("NGN_TO_USD_RATE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			rate = parsed
		}
	}

	return Config{
		Paystack:     os.Getenv("PAYSTACK_SECRET_KEY") != "",
		Stripe:       os.Getenv("STRIPE_SECRET_KEY") != "",
		AppURL:       appURL,
		NgnToUsdRate: rate,
	}
}
