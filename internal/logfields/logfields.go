package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyKind       = "kind"
	KeyLang       = "lang"
	KeyStatus     = "status"
	KeyReason     = "reason"
	KeyPath       = "path"
	KeyBranch     = "branch"
	KeyRevision   = "revision"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Kind(k string) slog.Attr          { return slog.String(KeyKind, k) }
func Lang(l string) slog.Attr          { return slog.String(KeyLang, l) }
func Status(s string) slog.Attr        { return slog.String(KeyStatus, s) }
func Reason(r string) slog.Attr        { return slog.String(KeyReason, r) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Branch(b string) slog.Attr        { return slog.String(KeyBranch, b) }
func Revision(r string) slog.Attr      { return slog.String(KeyRevision, r) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
