// Package cli provides the depot command tree.
package cli

import (
	gocontext "context"
	"os"

	"github.com/example/depot/internal/config"
	"github.com/example/depot/internal/ctxutil"
)

// globalOperator stores the resolved operator for the current CLI invocation.
// Set once at startup by ResolveOperator().
var globalOperator string

// ResolveOperator determines who is running the command and stores it
// globally. DEPOT_USER wins, then the operator recorded in the config file.
// An empty result is fine: services fall back to the current_user setting.
// Should be called once at CLI startup in PersistentPreRun.
func ResolveOperator() {
	if user := os.Getenv("DEPOT_USER"); user != "" {
		globalOperator = user
		return
	}
	if cfg, err := config.Load(""); err == nil {
		globalOperator = cfg.Operator
	}
}

// Operator returns the stored operator from CLI startup.
// Returns empty string if ResolveOperator() was not called.
func Operator() string {
	return globalOperator
}

// NewContext creates a context.Background() with the operator embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() gocontext.Context {
	ctx := gocontext.Background()
	if globalOperator != "" {
		return ctxutil.WithActorID(ctx, globalOperator)
	}
	return ctx
}
