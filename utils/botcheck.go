package utils

import (
	"errors"
	"time"
)

// Public forms carry a hidden "website" field and a client-rendered
// timestamp. Bots tend to fill the hidden field or submit instantly; humans
// do neither.

const MinFormElapsed = 3 * time.Second

var ErrBotSuspected = errors.New("submission rejected")

// BotCheckFields is embedded in public form request bodies.
type BotCheckFields struct {
	Website  string `json:"website"`   // honeypot, must stay empty
	FormTime int64  `json:"form_time"` // unix ms when the form rendered
}

// CheckBot returns ErrBotSuspected when the honeypot is filled or the form
// was submitted faster than a human plausibly could.
func CheckBot(fields BotCheckFields) error {
	if fields.Website != "" {
		return ErrBotSuspected
	}
	if fields.FormTime > 0 {
		rendered := time.UnixMilli(fields.FormTime)
		if time.Since(rendered) < MinFormElapsed {
			return ErrBotSuspected
		}
	}
	return nil
}
