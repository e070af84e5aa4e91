package alexa

import (
	"errors"
	"strings"
)

// Request types sent by the voice platform.
const (
	RequestTypeLaunch       = "LaunchRequest"
	RequestTypeIntent       = "IntentRequest"
	RequestTypeSessionEnded = "SessionEndedRequest"
)

var ErrInvalidApplicationID = errors.New("invalid application id")

// RequestEnvelope mirrors the JSON body the platform posts to the skill.
// https://developer.amazon.com/docs/custom-skills/request-and-response-json-reference.html
type RequestEnvelope struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Context Context `json:"context"`
	Request Request `json:"request"`
}

type Session struct {
	New         bool        `json:"new"`
	SessionID   string      `json:"sessionId"`
	Application Application `json:"application"`
	User        *User       `json:"user,omitempty"`
}

type Context struct {
	System System `json:"System"`
}

type System struct {
	Application    Application `json:"application"`
	User           *User       `json:"user,omitempty"`
	Device         *Device     `json:"device,omitempty"`
	APIEndpoint    string      `json:"apiEndpoint"`
	APIAccessToken string      `json:"apiAccessToken,omitempty"`
}

type Application struct {
	ApplicationID string `json:"applicationId"`
}

type User struct {
	UserID      string       `json:"userId"`
	AccessToken string       `json:"accessToken,omitempty"`
	Permissions *Permissions `json:"permissions,omitempty"`
}

type Permissions struct {
	ConsentToken string `json:"consentToken"`
}

type Device struct {
	DeviceID string `json:"deviceId"`
}

type Request struct {
	Type      string  `json:"type"`
	RequestID string  `json:"requestId"`
	Timestamp string  `json:"timestamp"`
	Locale    string  `json:"locale,omitempty"`
	Reason    string  `json:"reason,omitempty"`
	Intent    *Intent `json:"intent,omitempty"`
}

type Intent struct {
	Name string `json:"name"`
}

// ApplicationID prefers the context block; older events only carry it on the session.
func (e *RequestEnvelope) ApplicationID() string {
	if id := strings.TrimSpace(e.Context.System.Application.ApplicationID); id != "" {
		return id
	}
	return strings.TrimSpace(e.Session.Application.ApplicationID)
}

// VerifyApplicationID rejects events addressed to another skill. An empty
// expected id disables the check.
func (e *RequestEnvelope) VerifyApplicationID(expected string) error {
	expected = strings.TrimSpace(expected)
	if expected == "" {
		return nil
	}
	if e.ApplicationID() != expected {
		return ErrInvalidApplicationID
	}
	return nil
}

// ConsentToken returns the address-read consent token, or "" when the user
// object lacks a permissions block.
func (e *RequestEnvelope) ConsentToken() string {
	u := e.Context.System.User
	if u == nil || u.Permissions == nil {
		return ""
	}
	return strings.TrimSpace(u.Permissions.ConsentToken)
}

// DeviceID returns "" when the device block is missing.
func (e *RequestEnvelope) DeviceID() string {
	if e.Context.System.Device == nil {
		return ""
	}
	return strings.TrimSpace(e.Context.System.Device.DeviceID)
}
