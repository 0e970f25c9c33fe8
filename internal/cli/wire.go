package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"

	"github.com/example/collab-booking/internal/client"
	"github.com/example/collab-booking/internal/config"
	"github.com/example/collab-booking/internal/tokenstore"
	"github.com/example/collab-booking/internal/tui"
)

var errNotLoggedIn = errors.New("not logged in; run `collab-booking login` first")

type app struct {
	viper      *viper.Viper
	httpClient *http.Client
	now        func() time.Time
	browse     func(ctx context.Context, backend tui.Backend) error
	serve      serveFunc
}

func wireApp(v *viper.Viper) *app {
	if v == nil {
		v = viper.New()
	}
	return &app{
		viper:      v,
		httpClient: http.DefaultClient,
		now:        time.Now,
		browse:     tui.Run,
		serve:      runServer,
	}
}

func (a *app) clientConfig() (config.ClientConfig, error) {
	cfg, err := config.LoadClient(a.viper)
	if err != nil {
		return config.ClientConfig{}, fmt.Errorf("load client config: %w", err)
	}
	return cfg, nil
}

func (a *app) tokenStore() (*tokenstore.Store, config.ClientConfig, error) {
	cfg, err := a.clientConfig()
	if err != nil {
		return nil, config.ClientConfig{}, err
	}
	return tokenstore.New(cfg.TokenFile), cfg, nil
}

// anonymousClient returns a client without a token, for login.
func (a *app) anonymousClient() (*client.Client, *tokenstore.Store, config.ClientConfig, error) {
	store, cfg, err := a.tokenStore()
	if err != nil {
		return nil, nil, config.ClientConfig{}, err
	}
	c, err := client.New(cfg.Server, client.WithHTTPClient(a.httpClient))
	if err != nil {
		return nil, nil, config.ClientConfig{}, err
	}
	return c, store, cfg, nil
}

// authedClient returns a client carrying the stored token. A token stored
// for a different server is ignored.
func (a *app) authedClient(ctx context.Context) (*client.Client, error) {
	c, store, cfg, err := a.anonymousClient()
	if err != nil {
		return nil, err
	}
	cred, err := store.Load(ctx)
	if err != nil {
		if errors.Is(err, tokenstore.ErrNoToken) {
			return nil, errNotLoggedIn
		}
		return nil, err
	}
	if cred.Server != "" && cred.Server != cfg.Server {
		return nil, fmt.Errorf("stored token belongs to %s, not %s: %w", cred.Server, cfg.Server, errNotLoggedIn)
	}
	if cred.Expired(a.now()) {
		return nil, fmt.Errorf("stored token expired at %s: %w", cred.ExpiresAt.Local().Format(time.RFC1123), errNotLoggedIn)
	}
	c.SetToken(cred.Token)
	return c, nil
}

// apiError rewrites client sentinels into CLI guidance.
func apiError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, client.ErrUnauthorized):
		return fmt.Errorf("%w (server rejected the stored token)", errNotLoggedIn)
	default:
		return err
	}
}
