package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/collab-booking/internal/application"
	"github.com/example/collab-booking/internal/booking"
	apihttp "github.com/example/collab-booking/internal/http"
)

var testDay = time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := application.NewDemoCredentialStore("demo@collab.local", "123456", "Demo User", application.LightArgon2idParams)
	require.NoError(t, err)
	clock := func() time.Time { return testDay.Add(10 * time.Hour) }
	auth := application.NewAuthServiceWithLogger(store, nil, nil, clock, application.AuthOptions{}, logger)

	rooms, err := booking.NewRoomCatalog(nil)
	require.NoError(t, err)
	engine := booking.NewEngine(booking.NewSessionCatalog(testDay, nil), rooms, nil)
	svc := application.NewBookingServiceWithLogger(engine, clock, logger)

	server := httptest.NewServer(apihttp.NewRouter(apihttp.RouterConfig{
		Auth:         apihttp.NewAuthHandler(auth, logger),
		Sessions:     apihttp.NewSessionHandler(svc, logger),
		Rooms:        apihttp.NewRoomHandler(svc, logger),
		Bookings:     apihttp.NewBookingHandler(svc, logger),
		Authenticate: apihttp.RequireSession(auth, logger),
	}))
	t.Cleanup(server.Close)
	return server
}

func loggedIn(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	c, err := New(server.URL + "/")
	require.NoError(t, err)
	_, err = c.Login(context.Background(), "demo@collab.local", "123456")
	require.NoError(t, err)
	return c
}

func TestNewValidatesBaseURL(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		baseURL string
		wantErr string
	}{
		{name: "empty", baseURL: " ", wantErr: "api base url is required"},
		{name: "scheme", baseURL: "ftp://example.com", wantErr: "must use http or https"},
		{name: "host", baseURL: "http://", wantErr: "host is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.baseURL)
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoginStoresToken(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	c, err := New(server.URL)
	require.NoError(t, err)

	result, err := c.Login(context.Background(), "demo@collab.local", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, result.Token, c.Token())
	assert.Equal(t, "Demo User", result.Principal.DisplayName)
	assert.True(t, result.ExpiresAt.After(testDay))
}

func TestLoginMapsInvalidCredentials(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	c, err := New(server.URL)
	require.NoError(t, err)

	_, err = c.Login(context.Background(), "demo@collab.local", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, c.Token())

	_, err = c.Login(context.Background(), "", "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
}

func TestRequestsWithoutTokenAreUnauthorized(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	c, err := New(server.URL)
	require.NoError(t, err)

	_, err = c.Sessions(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	require.ErrorIs(t, c.Logout(context.Background()), ErrUnauthorized)
}

func TestBookingFlow(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	c := loggedIn(t, server)
	ctx := context.Background()

	sessions, err := c.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, len(booking.DefaultSlots))

	current, err := c.DefaultSession(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, sessions[1].ID, current.ID)

	rooms, err := c.Rooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, len(booking.RoomTypes))

	booked, err := c.Book(ctx, "CR1", current.ID)
	require.NoError(t, err)
	assert.Equal(t, "CR1", booked.Room.ID)
	assert.Equal(t, current.Label, booked.Session.Label)

	_, err = c.Book(ctx, "CR1", current.ID)
	require.ErrorIs(t, err, ErrAlreadyBooked)

	available, err := c.Availability(ctx, "CR1", current.ID)
	require.NoError(t, err)
	assert.False(t, available)

	partition, err := c.Partition(ctx, current.ID)
	require.NoError(t, err)
	assert.Len(t, partition.Available, len(rooms)-1)
	require.Len(t, partition.Unavailable, 1)
	assert.Equal(t, "CR1", partition.Unavailable[0].ID)

	bookings, err := c.Bookings(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "demo@collab.local", bookings[0].BookedBy.Email)

	_, err = c.Partition(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLogoutRevokesToken(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	c := loggedIn(t, server)
	token := c.Token()

	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, c.Token())

	c.SetToken(token)
	_, err := c.Rooms(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestAPIErrorFallsBackToRawBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	c, err := New(server.URL, WithToken("t"), WithRequestTimeout(time.Second))
	require.NoError(t, err)

	_, err = c.Rooms(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream unavailable", apiErr.Message)
	assert.False(t, errors.Is(err, ErrNotFound))
}
