// Package engine is the boundary to the meshwire networking engine. The
// protocol implementation lives elsewhere; this package owns the handoff of
// the resolved configuration aggregate and the context-driven lifecycle.
package engine

import (
	"context"
	"log/slog"
	"net/netip"

	"github.com/meshwire/meshwire/internal/config"
)

// Engine consumes an immutable configuration aggregate. Shutdown is driven
// by the context passed to Run; there is no process-wide stop hook.
type Engine struct {
	cfg    *config.Aggregate
	logger *slog.Logger
}

// New wires the engine to its configuration. The aggregate's credential
// handles are owned by the aggregate for the lifetime of the process.
func New(cfg *config.Aggregate, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{cfg: cfg, logger: logger}
}

// Run announces the effective configuration and blocks until the context is
// cancelled. A cancelled context is a clean shutdown, not an error.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info("starting secure channel",
		"listen_on", e.cfg.Channel.ListenOn.String(),
		"hello_timeout", e.cfg.Channel.HelloTimeout,
		"contacts", len(e.cfg.Channel.Contacts),
		"hostname_resolution", e.cfg.Channel.HostnameResolution.String())

	if e.cfg.TapAdapter.Enabled {
		e.logger.Info("using tap adapter",
			"ipv4", prefixString(e.cfg.TapAdapter.IPv4),
			"ipv6", prefixString(e.cfg.TapAdapter.IPv6))
	} else {
		e.logger.Info("configured not to use any tap adapter")
	}

	e.logger.Info("switching configured",
		"routing_method", e.cfg.Switch.RoutingMethod.String(),
		"relay_mode", e.cfg.Switch.RelayModeEnabled,
		"certificate_validation", e.cfg.Security.Validator.Mode.String(),
		"authorities", len(e.cfg.Security.Authorities))

	<-ctx.Done()
	e.logger.Info("shutting down")
	return nil
}

func prefixString(p *netip.Prefix) string {
	if p == nil {
		return "none"
	}
	return p.String()
}
