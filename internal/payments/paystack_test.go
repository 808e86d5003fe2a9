package payments

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaystackInitialize(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]any{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"reference":         "nova_7_deadbeef",
			},
		})
	}))
	defer srv.Close()

	client := NewPaystack("sk_test_xyz", srv.URL)
	resp, err := client.Initialize(PaystackInitializeRequest{
		Email:       "renter@example.com",
		AmountKobo:  6750000,
		Reference:   "nova_7_deadbeef",
		CallbackURL: "http://localhost:3000/bookings/7/payment?gateway=paystack",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc123", resp.AuthorizationURL)
	assert.Equal(t, "nova_7_deadbeef", resp.Reference)
	assert.Equal(t, "Bearer sk_test_xyz", gotAuth)
	assert.Equal(t, "renter@example.com", gotBody["email"])
	assert.Equal(t, float64(6750000), gotBody["amount"])
	assert.Equal(t, "nova_7_deadbeef", gotBody["reference"])
}

func TestPaystackInitialize_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(400)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "Invalid amount",
		})
	}))
	defer srv.Close()

	client := NewPaystack("sk_test_xyz", srv.URL)
	_, err := client.Initialize(PaystackInitializeRequest{Email: "a@b.c", AmountKobo: -1})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid amount")
}

func TestPaystackVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "GET", r.Method)
		require.Equal(t, "/transaction/verify/nova_7_deadbeef", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data": map[string]any{
				"status": "success",
				"amount": 6750000,
			},
		})
	}))
	defer srv.Close()

	client := NewPaystack("sk_test_xyz", srv.URL)
	resp, err := client.Verify("nova_7_deadbeef")

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(6750000), resp.AmountKobo)
}

func TestPaystackVerify_Failed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data": map[string]any{
				"status": "abandoned",
				"amount": 6750000,
			},
		})
	}))
	defer srv.Close()

	client := NewPaystack("sk_test_xyz", srv.URL)
	resp, err := client.Verify("nova_7_deadbeef")

	require.NoError(t, err)
	assert.False(t, resp.Success)
}
