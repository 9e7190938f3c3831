package capture

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/jobvault/internal/config"
	"github.com/jonathan/jobvault/internal/types"
)

var (
	// ErrEasyApplyDisabled means Easy Apply captures are switched off.
	ErrEasyApplyDisabled = errors.New("EA disabled")
	// ErrExternalCaptureOff means external-application captures are switched off.
	ErrExternalCaptureOff = errors.New("EXT capture off")
)

// Allow reports whether an application event of kind should be captured
// under cfg at now. Manual captures are always allowed.
func Allow(cfg *config.Config, kind types.ApplyKind, now time.Time) error {
	switch kind {
	case types.ApplyEasy:
		if EasyApplyDisabled(cfg, now) || !cfg.CaptureEA {
			return ErrEasyApplyDisabled
		}
	case types.ApplyExternal:
		if !cfg.CaptureExt {
			return ErrExternalCaptureOff
		}
	}
	return nil
}

// EasyApplyDisabled reports whether Easy Apply is switched off, permanently
// or for the rest of the day.
func EasyApplyDisabled(cfg *config.Config, now time.Time) bool {
	return cfg.DisableEAAlways || now.UnixMilli() < cfg.DisableEATodayUntil
}

// Scope selects how Easy Apply capture is switched.
type Scope string

const (
	// ScopeToday disables Easy Apply capture until the end of the local day.
	ScopeToday Scope = "today"
	// ScopeAlways disables Easy Apply capture until re-enabled.
	ScopeAlways Scope = "always"
	// ScopeEnable clears both kinds of disable.
	ScopeEnable Scope = "enable"
)

// SetEasyApply applies scope to cfg relative to now.
func SetEasyApply(cfg *config.Config, scope Scope, now time.Time) error {
	switch scope {
	case ScopeToday:
		cfg.DisableEATodayUntil = EndOfDay(now).UnixMilli()
	case ScopeAlways:
		cfg.DisableEAAlways = true
	case ScopeEnable:
		cfg.DisableEAAlways = false
		cfg.DisableEATodayUntil = 0
	default:
		return fmt.Errorf("unknown scope %q (want today, always or enable)", scope)
	}
	return nil
}

// EndOfDay returns 23:59:59.999 on now's day in now's location.
func EndOfDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), now.Location())
}
