// Package skill answers voice-platform requests for the Food Hero skill.
package skill

import (
	"context"
	"math/rand"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.uber.org/zap"

	"foodhero/internal/alerts"
	"foodhero/internal/alexa"
)

// ResponseSink receives the single terminal response of an invocation.
type ResponseSink interface {
	Tell(text string)
	Ask(text, reprompt string)
	TellWithCard(text, title, content string)
	TellWithPermissionCard(text string, permissions []string)
	End()
}

type AddressLookup interface {
	CountryAndPostalCode(ctx context.Context) (*alexa.AddressResponse, error)
}

type AddressClientFactory func(apiEndpoint, deviceID, consentToken string) (AddressLookup, error)

type RestaurantSearcher interface {
	TopRestaurants(ctx context.Context, postalCode string) ([]string, error)
}

type FailureNotifier interface {
	DinnerFailed(ctx context.Context, f alerts.Failure) error
}

type intentFunc func(ctx context.Context, env *alexa.RequestEnvelope, out ResponseSink, log *zap.Logger)

type Handler struct {
	appID            string
	search           RestaurantSearcher
	newAddressClient AddressClientFactory
	notifier         FailureNotifier
	log              *zap.Logger
	intn             func(n int) int
	intents          map[alexa.IntentKind]intentFunc
}

type Option func(*Handler)

func WithLogger(l *zap.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

func WithAddressClientFactory(f AddressClientFactory) Option {
	return func(h *Handler) {
		if f != nil {
			h.newAddressClient = f
		}
	}
}

func WithNotifier(n FailureNotifier) Option {
	return func(h *Handler) {
		if n != nil {
			h.notifier = n
		}
	}
}

// WithRandom replaces the uniform index source. intn(n) must return a value in [0, n).
func WithRandom(intn func(n int) int) Option {
	return func(h *Handler) {
		if intn != nil {
			h.intn = intn
		}
	}
}

func NewHandler(appID string, search RestaurantSearcher, opts ...Option) *Handler {
	h := &Handler{
		appID:            appID,
		search:           search,
		newAddressClient: defaultAddressClient,
		notifier:         alerts.NewNotifier(nil, ""),
		log:              zap.NewNop(),
		intn:             rand.Intn,
	}
	for _, opt := range opts {
		opt(h)
	}

	h.intents = map[alexa.IntentKind]intentFunc{
		alexa.IntentLaunch:       h.getDinner,
		alexa.IntentGetDinner:    h.getDinner,
		alexa.IntentHelp:         help,
		alexa.IntentCancel:       stop,
		alexa.IntentStop:         stop,
		alexa.IntentSessionEnded: sessionEnded,
		alexa.IntentUnhandled:    unhandled,
	}
	return h
}

// Handle is the Lambda entry point. Only an application id mismatch is
// returned as an error; every other outcome is a spoken response.
func (h *Handler) Handle(ctx context.Context, env alexa.RequestEnvelope) (*alexa.ResponseEnvelope, error) {
	kind := env.Kind()
	log := h.log.With(
		zap.String("alexa_request_id", env.Request.RequestID),
		zap.String("intent", kind.String()),
	)
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		log = log.With(zap.String("request_id", lc.AwsRequestID))
	}

	log.Info("new event",
		zap.String("request_type", env.Request.Type),
		zap.Bool("session_new", env.Session.New),
		zap.String("locale", env.Request.Locale),
	)

	if err := env.VerifyApplicationID(h.appID); err != nil {
		log.Error("rejecting event", zap.String("application_id", env.ApplicationID()), zap.Error(err))
		return nil, err
	}

	w := alexa.NewResponseWriter()
	fn, ok := h.intents[kind]
	if !ok {
		fn = unhandled
	}
	fn(ctx, &env, w, log)

	if !w.Emitted() {
		log.Error("handler emitted no response")
		w.Tell(FallbackMessage)
	}
	if n := w.Dropped(); n > 0 {
		log.Debug("dropped extra responses", zap.Int("count", n))
	}
	return w.Envelope(), nil
}

func help(_ context.Context, _ *alexa.RequestEnvelope, out ResponseSink, _ *zap.Logger) {
	out.Ask(HelpMessage, HelpReprompt)
}

func stop(_ context.Context, _ *alexa.RequestEnvelope, out ResponseSink, _ *zap.Logger) {
	out.Tell(StopMessage)
}

func sessionEnded(_ context.Context, env *alexa.RequestEnvelope, out ResponseSink, log *zap.Logger) {
	log.Info("session ended", zap.String("reason", env.Request.Reason))
	out.End()
}

func unhandled(_ context.Context, env *alexa.RequestEnvelope, out ResponseSink, log *zap.Logger) {
	name := ""
	if env.Request.Intent != nil {
		name = env.Request.Intent.Name
	}
	log.Warn("unhandled request", zap.String("request_type", env.Request.Type), zap.String("intent_name", name))
	out.Ask(HelpMessage, HelpReprompt)
}

func defaultAddressClient(apiEndpoint, deviceID, consentToken string) (AddressLookup, error) {
	c, err := alexa.NewAddressClient(apiEndpoint, deviceID, consentToken)
	if err != nil {
		return nil, err
	}
	return c, nil
}
