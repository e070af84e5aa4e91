package alexa

// IntentKind is the closed set of requests the skill knows how to answer.
type IntentKind int

const (
	IntentUnhandled IntentKind = iota
	IntentLaunch
	IntentGetDinner
	IntentHelp
	IntentCancel
	IntentStop
	IntentSessionEnded
)

var intentNames = map[string]IntentKind{
	"GetDinnerIntent":     IntentGetDinner,
	"AMAZON.HelpIntent":   IntentHelp,
	"AMAZON.CancelIntent": IntentCancel,
	"AMAZON.StopIntent":   IntentStop,
}

func (k IntentKind) String() string {
	switch k {
	case IntentLaunch:
		return "LaunchRequest"
	case IntentGetDinner:
		return "GetDinnerIntent"
	case IntentHelp:
		return "AMAZON.HelpIntent"
	case IntentCancel:
		return "AMAZON.CancelIntent"
	case IntentStop:
		return "AMAZON.StopIntent"
	case IntentSessionEnded:
		return "SessionEndedRequest"
	default:
		return "Unhandled"
	}
}

// Kind classifies the envelope's request.
func (e *RequestEnvelope) Kind() IntentKind {
	switch e.Request.Type {
	case RequestTypeLaunch:
		return IntentLaunch
	case RequestTypeSessionEnded:
		return IntentSessionEnded
	case RequestTypeIntent:
		if e.Request.Intent == nil {
			return IntentUnhandled
		}
		if k, ok := intentNames[e.Request.Intent.Name]; ok {
			return k
		}
	}
	return IntentUnhandled
}
