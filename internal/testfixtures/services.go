package testfixtures

import (
	"log/slog"
	"testing"
	"time"

	"github.com/example/collab-booking/internal/application"
)

// Demo account used by fixture auth services.
const (
	DemoEmail    = "demo@collab.local"
	DemoPassword = "123456"
	DemoName     = "Demo User"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock  *Clock
	Tokens *IDGenerator
	Logger *slog.Logger
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:  NewClock(time.Time{}),
		Tokens: NewIDGenerator("token"),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.Tokens == nil {
		factory.Tokens = NewIDGenerator("token")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithTokenGenerator overrides the session token generator.
func WithTokenGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Tokens = generator
	}
}

func WithLogger(logger *slog.Logger) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Logger = logger
	}
}

// NewDemoCredentials returns a credential store holding the demo account,
// hashed with cheap Argon2id parameters.
func NewDemoCredentials(tb testing.TB) *application.StaticCredentialStore {
	tb.Helper()
	store, err := application.NewDemoCredentialStore(DemoEmail, DemoPassword, DemoName, application.LightArgon2idParams)
	if err != nil {
		tb.Fatalf("NewDemoCredentialStore failed: %v", err)
	}
	return store
}

// NewAuthService builds an auth service for the demo account.
func (f *ServiceFactory) NewAuthService(tb testing.TB, opts application.AuthOptions) *application.AuthService {
	tb.Helper()
	return application.NewAuthServiceWithLogger(NewDemoCredentials(tb), nil, f.Tokens.NextFunc(), f.Clock.NowFunc(), opts, f.Logger)
}

// NewBookingService wraps engine with the factory clock.
func (f *ServiceFactory) NewBookingService(engine application.BookingEngine) *application.BookingService {
	return application.NewBookingServiceWithLogger(engine, f.Clock.NowFunc(), f.Logger)
}
