package alexa

import "foodhero/internal/speech"

const (
	SpeechTypeSSML = "SSML"

	CardTypeSimple      = "Simple"
	CardTypePermissions = "AskForPermissionsConsent"
)

type ResponseEnvelope struct {
	Version           string         `json:"version"`
	SessionAttributes map[string]any `json:"sessionAttributes,omitempty"`
	Response          Response       `json:"response"`
}

type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession *bool         `json:"shouldEndSession,omitempty"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	SSML string `json:"ssml,omitempty"`
}

type Card struct {
	Type        string   `json:"type"`
	Title       string   `json:"title,omitempty"`
	Content     string   `json:"content,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}

// ResponseWriter collects the single terminal response of an invocation.
// Only the first emission is kept; later ones are counted and dropped.
type ResponseWriter struct {
	resp    *ResponseEnvelope
	dropped int
}

func NewResponseWriter() *ResponseWriter {
	return &ResponseWriter{}
}

func (w *ResponseWriter) Tell(text string) {
	w.emit(Response{
		OutputSpeech:     ssmlSpeech(text),
		ShouldEndSession: boolPtr(true),
	})
}

func (w *ResponseWriter) Ask(text, reprompt string) {
	w.emit(Response{
		OutputSpeech:     ssmlSpeech(text),
		Reprompt:         &Reprompt{OutputSpeech: *ssmlSpeech(reprompt)},
		ShouldEndSession: boolPtr(false),
	})
}

func (w *ResponseWriter) TellWithCard(text, title, content string) {
	w.emit(Response{
		OutputSpeech: ssmlSpeech(text),
		Card: &Card{
			Type:    CardTypeSimple,
			Title:   title,
			Content: content,
		},
		ShouldEndSession: boolPtr(true),
	})
}

func (w *ResponseWriter) TellWithPermissionCard(text string, permissions []string) {
	w.emit(Response{
		OutputSpeech: ssmlSpeech(text),
		Card: &Card{
			Type:        CardTypePermissions,
			Permissions: append([]string(nil), permissions...),
		},
		ShouldEndSession: boolPtr(true),
	})
}

// End emits a response with no speech, as required for SessionEndedRequest.
func (w *ResponseWriter) End() {
	w.emit(Response{})
}

func (w *ResponseWriter) Emitted() bool {
	return w.resp != nil
}

// Dropped reports how many emissions arrived after the first one.
func (w *ResponseWriter) Dropped() int {
	return w.dropped
}

// Envelope returns the recorded response, or an empty one if nothing was emitted.
func (w *ResponseWriter) Envelope() *ResponseEnvelope {
	if w.resp == nil {
		return &ResponseEnvelope{Version: "1.0"}
	}
	return w.resp
}

func (w *ResponseWriter) emit(r Response) {
	if w.resp != nil {
		w.dropped++
		return
	}
	w.resp = &ResponseEnvelope{
		Version:  "1.0",
		Response: r,
	}
}

func ssmlSpeech(text string) *OutputSpeech {
	return &OutputSpeech{
		Type: SpeechTypeSSML,
		SSML: speech.Wrap(text),
	}
}

func boolPtr(b bool) *bool { return &b }
