package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRoot       = "root"
	KeyPath       = "path"
	KeyRef        = "ref"
	KeyAddress    = "address"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyRequestID  = "request_id"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeySubject    = "subject"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Root(r string) slog.Attr        { return slog.String(KeyRoot, r) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func Ref(r string) slog.Attr         { return slog.String(KeyRef, r) }
func Address(a string) slog.Attr     { return slog.String(KeyAddress, a) }
func Method(m string) slog.Attr      { return slog.String(KeyMethod, m) }
func Status(s int) slog.Attr         { return slog.Int(KeyStatus, s) }
func RequestID(id string) slog.Attr  { return slog.String(KeyRequestID, id) }
func UserAgent(ua string) slog.Attr  { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(ra string) slog.Attr { return slog.String(KeyRemoteAddr, ra) }
func Subject(s string) slog.Attr     { return slog.String(KeySubject, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
