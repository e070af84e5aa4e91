// Package speech builds SSML for spoken responses.
package speech

import (
	"fmt"
	"strings"
	"time"
)

const (
	openTag  = "<speak>"
	closeTag = "</speak>"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Builder accumulates spoken fragments. The zero value is ready to use.
type Builder struct {
	parts []string
}

// Say appends text, escaping markup characters.
func (b *Builder) Say(text string) *Builder {
	text = strings.TrimSpace(text)
	if text == "" {
		return b
	}
	b.parts = append(b.parts, escaper.Replace(text))
	return b
}

// Pause appends a break. Durations are capped at the platform limit of 10s.
func (b *Builder) Pause(d time.Duration) *Builder {
	if d <= 0 {
		return b
	}
	if d > 10*time.Second {
		d = 10 * time.Second
	}
	b.parts = append(b.parts, fmt.Sprintf(`<break time="%dms"/>`, d.Milliseconds()))
	return b
}

// SSML renders the fragments joined by spaces. With excludeSpeakTag the
// result can be embedded in a larger document.
func (b *Builder) SSML(excludeSpeakTag bool) string {
	body := strings.Join(b.parts, " ")
	if excludeSpeakTag {
		return body
	}
	return openTag + body + closeTag
}

// Wrap puts text inside a speak element unless it already is one.
func Wrap(text string) string {
	t := strings.TrimSpace(text)
	if strings.HasPrefix(t, openTag) && strings.HasSuffix(t, closeTag) {
		return t
	}
	return openTag + t + closeTag
}

// Unwrap strips an outer speak element.
func Unwrap(ssml string) string {
	t := strings.TrimSpace(ssml)
	t = strings.TrimPrefix(t, openTag)
	return strings.TrimSuffix(t, closeTag)
}
