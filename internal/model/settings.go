package model

import "errors"

// Settings holds the Pomodoro configuration. Durations are minutes.
type Settings struct {
	WorkDuration            int  `json:"workDuration"`
	ShortBreakDuration      int  `json:"shortBreakDuration"`
	LongBreakDuration       int  `json:"longBreakDuration"`
	SessionsBeforeLongBreak int  `json:"sessionsBeforeLongBreak"`
	EnableNotifications     bool `json:"enableNotifications"`
	EnableAutostart         bool `json:"enableAutostart"`
}

func DefaultSettings() Settings {
	return Settings{
		WorkDuration:            25,
		ShortBreakDuration:      5,
		LongBreakDuration:       15,
		SessionsBeforeLongBreak: 4,
		EnableNotifications:     false,
		EnableAutostart:         false,
	}
}

func (s Settings) Validate() error {
	if s.WorkDuration < 1 || s.ShortBreakDuration < 1 || s.LongBreakDuration < 1 {
		return errors.New("model: durations must be at least one minute")
	}
	if s.SessionsBeforeLongBreak < 1 {
		return errors.New("model: sessions before long break must be at least 1")
	}
	return nil
}
