package skill

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"foodhero/internal/alerts"
	"foodhero/internal/alexa"
	"foodhero/internal/speech"
)

type fakeAddress struct {
	res   *alexa.AddressResponse
	err   error
	calls int
}

func (f *fakeAddress) CountryAndPostalCode(ctx context.Context) (*alexa.AddressResponse, error) {
	f.calls++
	return f.res, f.err
}

type fakeSearch struct {
	names  []string
	err    error
	calls  int
	postal string
}

func (f *fakeSearch) TopRestaurants(ctx context.Context, postalCode string) ([]string, error) {
	f.calls++
	f.postal = postalCode
	return f.names, f.err
}

type fakeNotifier struct {
	failures []alerts.Failure
	err      error
}

func (f *fakeNotifier) DinnerFailed(ctx context.Context, fl alerts.Failure) error {
	f.failures = append(f.failures, fl)
	return f.err
}

func okAddress(postal string) *fakeAddress {
	return &fakeAddress{res: &alexa.AddressResponse{
		StatusCode: 200,
		Address:    alexa.Address{CountryCode: "US", PostalCode: postal},
	}}
}

func factoryFor(a AddressLookup) AddressClientFactory {
	return func(apiEndpoint, deviceID, consentToken string) (AddressLookup, error) {
		if apiEndpoint == "" || deviceID == "" || consentToken == "" {
			return nil, alexa.ErrMissingDeviceInfo
		}
		return a, nil
	}
}

// seq returns the given indexes in order, then zeros.
func seq(vals ...int) func(int) int {
	i := 0
	return func(int) int {
		if i >= len(vals) {
			return 0
		}
		v := vals[i]
		i++
		return v
	}
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func intentEvent(name string) alexa.RequestEnvelope {
	return alexa.RequestEnvelope{
		Version: "1.0",
		Context: alexa.Context{System: alexa.System{
			Application: alexa.Application{ApplicationID: "amzn1.ask.skill.food-hero"},
		}},
		Request: alexa.Request{
			Type:      alexa.RequestTypeIntent,
			RequestID: "amzn1.echo-api.request.test",
			Intent:    &alexa.Intent{Name: name},
		},
	}
}

func dinnerEvent(consentToken, deviceID, apiEndpoint string) alexa.RequestEnvelope {
	env := intentEvent("GetDinnerIntent")
	env.Context.System.APIEndpoint = apiEndpoint
	env.Context.System.User = &alexa.User{UserID: "amzn1.ask.account.test"}
	if consentToken != "" {
		env.Context.System.User.Permissions = &alexa.Permissions{ConsentToken: consentToken}
	}
	if deviceID != "" {
		env.Context.System.Device = &alexa.Device{DeviceID: deviceID}
	}
	return env
}

func spokenText(t *testing.T, env *alexa.ResponseEnvelope) string {
	t.Helper()
	if env.Response.OutputSpeech == nil {
		t.Fatalf("response has no speech")
	}
	return speech.Unwrap(env.Response.OutputSpeech.SSML)
}
