package skill

import (
	"context"
	"testing"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"foodhero/internal/alexa"
)

func TestHandle_Help(t *testing.T) {
	h := NewHandler("", &fakeSearch{})

	res, err := h.Handle(context.Background(), intentEvent("AMAZON.HelpIntent"))
	require.NoError(t, err)

	assert.Equal(t, HelpMessage, spokenText(t, res))
	require.NotNil(t, res.Response.Reprompt)
	assert.Equal(t, "<speak>"+HelpReprompt+"</speak>", res.Response.Reprompt.OutputSpeech.SSML)
	assert.False(t, *res.Response.ShouldEndSession)
}

func TestHandle_CancelAndStop(t *testing.T) {
	h := NewHandler("", &fakeSearch{})

	for _, name := range []string{"AMAZON.CancelIntent", "AMAZON.StopIntent"} {
		res, err := h.Handle(context.Background(), intentEvent(name))
		require.NoError(t, err)
		assert.Equal(t, StopMessage, spokenText(t, res), name)
		assert.True(t, *res.Response.ShouldEndSession, name)
		assert.Nil(t, res.Response.Card, name)
	}
}

func TestHandle_LaunchRunsDinnerFlow(t *testing.T) {
	addr := okAddress("94107")
	search := &fakeSearch{names: []string{"Joe's Diner"}}
	h := NewHandler("", search, WithAddressClientFactory(factoryFor(addr)), WithRandom(seq(0, 1)))

	env := dinnerEvent("consent-abc", "dev-1", "https://api.amazonalexa.com")
	env.Request = alexa.Request{Type: alexa.RequestTypeLaunch, RequestID: "r-launch"}

	res, err := h.Handle(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, "How about: Joe's Diner", spokenText(t, res))
	assert.Equal(t, 1, search.calls)
}

func TestHandle_SessionEnded(t *testing.T) {
	h := NewHandler("", &fakeSearch{})
	env := alexa.RequestEnvelope{Request: alexa.Request{Type: alexa.RequestTypeSessionEnded, Reason: "USER_INITIATED"}}

	res, err := h.Handle(context.Background(), env)
	require.NoError(t, err)
	assert.Nil(t, res.Response.OutputSpeech)
	assert.Nil(t, res.Response.Card)
}

func TestHandle_Unhandled(t *testing.T) {
	log, logs := observedLogger()
	h := NewHandler("", &fakeSearch{}, WithLogger(log))

	res, err := h.Handle(context.Background(), intentEvent("AMAZON.FallbackIntent"))
	require.NoError(t, err)
	assert.Equal(t, HelpMessage, spokenText(t, res))
	assert.Equal(t, 1, logs.FilterMessage("unhandled request").Len())
}

func TestHandle_ApplicationIDMismatch(t *testing.T) {
	search := &fakeSearch{}
	h := NewHandler("amzn1.ask.skill.other", search)

	res, err := h.Handle(context.Background(), intentEvent("GetDinnerIntent"))
	assert.ErrorIs(t, err, alexa.ErrInvalidApplicationID)
	assert.Nil(t, res)
	assert.Zero(t, search.calls)
}

func TestHandle_ApplicationIDMatch(t *testing.T) {
	h := NewHandler("amzn1.ask.skill.food-hero", &fakeSearch{})

	res, err := h.Handle(context.Background(), intentEvent("AMAZON.StopIntent"))
	require.NoError(t, err)
	assert.Equal(t, StopMessage, spokenText(t, res))
}

func TestHandle_LogsLambdaRequestID(t *testing.T) {
	log, logs := observedLogger()
	h := NewHandler("", &fakeSearch{}, WithLogger(log))

	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "lambda-req-1"})
	_, err := h.Handle(ctx, intentEvent("AMAZON.HelpIntent"))
	require.NoError(t, err)

	entries := logs.FilterMessage("new event").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "lambda-req-1", fields["request_id"])
	assert.Equal(t, "amzn1.echo-api.request.test", fields["alexa_request_id"])
	assert.Equal(t, "AMAZON.HelpIntent", fields["intent"])
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}
