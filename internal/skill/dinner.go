package skill

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"foodhero/internal/alerts"
	"foodhero/internal/alexa"
	"foodhero/internal/speech"
)

var (
	ErrPostalLookup  = errors.New("failed postal lookup")
	ErrNoRestaurants = errors.New("no restaurants found")

	errIndexOutOfRange = errors.New("random index out of range")
)

// dinnerState tracks how far a GetDinner invocation got.
type dinnerState int

const (
	stateStart dinnerState = iota
	stateAwaitingAddress
	stateAwaitingQuery
	stateResponded
	statePermissionDenied
	stateFailed
)

func (s dinnerState) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateAwaitingAddress:
		return "awaiting_address"
	case stateAwaitingQuery:
		return "awaiting_query"
	case stateResponded:
		return "responded"
	case statePermissionDenied:
		return "permission_denied"
	default:
		return "failed"
	}
}

// getDinner resolves the device postal code, searches for restaurants and
// announces one. All failures after the permission check go through one
// boundary that logs, then picks the message.
func (h *Handler) getDinner(ctx context.Context, env *alexa.RequestEnvelope, out ResponseSink, log *zap.Logger) {
	state := stateStart

	token := env.ConsentToken()
	if token == "" {
		log.Info("unable to access a consentToken")
	}
	client, err := h.newAddressClient(env.Context.System.APIEndpoint, env.DeviceID(), token)
	if err != nil {
		log.Warn("failed to get address client", zap.Bool("has_device", env.DeviceID() != ""), zap.Error(err))
	}

	if token == "" || client == nil {
		h.transition(log, &state, statePermissionDenied)
		out.TellWithPermissionCard(MissingPermissionMessage, []string{AddressPermission})
		return
	}

	if err := h.recommend(ctx, client, out, log, &state); err != nil {
		failedAt := state
		h.transition(log, &state, stateFailed)
		h.fail(ctx, env, out, log, failedAt, err)
		return
	}
	h.transition(log, &state, stateResponded)
}

func (h *Handler) recommend(ctx context.Context, client AddressLookup, out ResponseSink, log *zap.Logger, state *dinnerState) error {
	h.transition(log, state, stateAwaitingAddress)
	res, err := client.CountryAndPostalCode(ctx)
	if err != nil {
		return err
	}
	postalCode, err := postalCodeFrom(res)
	if err != nil {
		return err
	}

	h.transition(log, state, stateAwaitingQuery)
	places, err := h.search.TopRestaurants(ctx, postalCode)
	if err != nil {
		return err
	}

	text, place, err := h.compose(places)
	if err != nil {
		return err
	}
	log.Info("recommending restaurant", zap.String("postal_code", postalCode), zap.Int("candidates", len(places)))
	out.TellWithCard(text, SkillName, place)
	return nil
}

func (h *Handler) fail(ctx context.Context, env *alexa.RequestEnvelope, out ResponseSink, log *zap.Logger, at dinnerState, err error) {
	switch {
	case errors.Is(err, ErrPostalLookup):
		log.Warn("postal code lookup refused", zap.Error(err))
		out.Tell(PostalLookupFailedMessage)
	case errors.Is(err, ErrNoRestaurants):
		log.Warn("no restaurants for postal code", zap.Error(err))
		out.Tell(NoRestaurantsMessage)
	default:
		log.Error("unable to find dinner", zap.Stringer("state", at), zap.Error(err))
		out.Tell(FallbackMessage)

		nerr := h.notifier.DinnerFailed(ctx, alerts.Failure{
			RequestID: env.Request.RequestID,
			Stage:     at.String(),
			Err:       err,
		})
		if nerr != nil {
			log.Warn("failure alert not sent", zap.Error(nerr))
		}
	}
}

func (h *Handler) transition(log *zap.Logger, state *dinnerState, next dinnerState) {
	log.Debug("dinner state", zap.Stringer("from", *state), zap.Stringer("to", next))
	*state = next
}

func postalCodeFrom(res *alexa.AddressResponse) (string, error) {
	if res == nil {
		return "", fmt.Errorf("%w: empty address response", ErrPostalLookup)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrPostalLookup, res.StatusCode)
	}
	return res.Address.PostalCode, nil
}

// compose picks one restaurant and a lead-in. It returns ErrNoRestaurants for
// an empty list, so a card is never built without a name.
func (h *Handler) compose(places []string) (text string, place string, err error) {
	if len(places) == 0 {
		return "", "", ErrNoRestaurants
	}
	i, ok := pickIndex(h.intn, len(places))
	if !ok {
		return "", "", errIndexOutOfRange
	}
	p, ok := pickIndex(h.intn, len(dinnerPrefixes))
	if !ok {
		return "", "", errIndexOutOfRange
	}

	place = places[i]
	var b speech.Builder
	b.Say(dinnerPrefixes[p] + place)
	return b.SSML(true), place, nil
}

// pickIndex draws from intn and rejects anything outside [0, n).
func pickIndex(intn func(int) int, n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	i := intn(n)
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}
