package endato

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"solar-leads/api"
	"solar-leads/models"
)

func TestEndatoApiClient_GetPropertyDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, ADDRESS_ID_ENDPOINT, r.URL.Path)
		assert.Equal(t, "name", r.Header.Get("galaxy-ap-name"))
		assert.Equal(t, "pass", r.Header.Get("galaxy-ap-password"))
		assert.Equal(t, "DevAPIAddressID", r.Header.Get("galaxy-search-type"))

		var body models.AddressIDRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, models.AddressIDRequest{
			AddressLine1: "2400 S Halsted St",
			AddressLine2: "Chicago, IL 60608",
			ExactMatch:   "CurrentOwner",
		}, body)

		w.Write(addressResponseFixture)
	}))
	defer srv.Close()

	client := NewEndatoApiClient(api.NewHTTPClient(srv.URL), "name", "pass", zaptest.NewLogger(t))
	response, err := client.GetPropertyDetails(context.Background(),
		models.StreetAddress{Line1: "2400 S Halsted St", Line2: "Chicago, IL 60608"})
	require.NoError(t, err)
	require.Len(t, response.Persons, 1)
	assert.Equal(t, "Rivera", response.Persons[0].Name.LastName)
	assert.Equal(t, "(312) 555-0142", response.Persons[0].Phones[0].Number)
}

func TestEndatoApiClient_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewEndatoApiClient(api.NewHTTPClient(srv.URL), "name", "wrong", zaptest.NewLogger(t))
	_, err := client.GetPropertyDetails(context.Background(), models.StreetAddress{})
	assert.Error(t, err)
}

func TestEndatoApiClientMock(t *testing.T) {
	response, err := NewEndatoApiClientMock().GetPropertyDetails(context.Background(), models.StreetAddress{})
	require.NoError(t, err)
	assert.False(t, response.IsError)
	assert.Len(t, response.Persons, 1)
}
