package bootstrap

import "context"

// AuditLog is an operational audit record (server lifecycle, config
// changes), separate from the per-entry correction audit trail.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
