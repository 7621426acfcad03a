package update

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type RuntimeConfig struct {
	DesktopNotifications bool
	FocusXPPerSecond     float64
	TaskXPPerSecond      float64
	CompletionBonusXP    float64
	EngineBuffer         int
	AutostartDelay       time.Duration
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DesktopNotifications: false,
		FocusXPPerSecond:     0.5,
		TaskXPPerSecond:      0.2,
		CompletionBonusXP:    50,
		EngineBuffer:         64,
		AutostartDelay:       2 * time.Second,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvBool("STUDYD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvFloat("STUDYD_FOCUS_XP_PER_SECOND"); ok && v > 0 {
		cfg.FocusXPPerSecond = v
	}
	if v, ok := getEnvFloat("STUDYD_TASK_XP_PER_SECOND"); ok && v > 0 {
		cfg.TaskXPPerSecond = v
	}
	if v, ok := getEnvFloat("STUDYD_COMPLETION_BONUS_XP"); ok && v > 0 {
		cfg.CompletionBonusXP = v
	}
	if v, ok := getEnvInt("STUDYD_ENGINE_BUFFER"); ok && v > 0 {
		cfg.EngineBuffer = v
	}
	if v, ok := getEnvInt("STUDYD_AUTOSTART_DELAY_SECONDS"); ok && v > 0 {
		cfg.AutostartDelay = time.Duration(v) * time.Second
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvFloat(name string) (float64, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
