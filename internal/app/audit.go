package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/depot/internal/core/identifier"
	"github.com/example/depot/internal/ctxutil"
	"github.com/example/depot/internal/ports/secondary"
)

// Audit action constants. STATUS_CHANGE records a manual transition;
// STATUS_AUTO records the derived recomputation after a procurement update.
const (
	ActionBatchCreate    = "BATCH_CREATE"
	ActionStatusChange   = "STATUS_CHANGE"
	ActionStatusAuto     = "STATUS_AUTO"
	ActionProcUpdate     = "PROC_UPDATE"
	ActionAllocOverride  = "ALLOC_OVERRIDE"
	ActionAllocReset     = "ALLOC_RESET"
	ActionExceptionOpen  = "EXC_OPEN"
	ActionExceptionClose = "EXC_CLOSE"
	ActionSettingsChange = "SETTINGS_CHANGE"
)

// Audit entity type constants.
const (
	EntityBatch      = "Batch"
	EntityBatchLine  = "BatchLine"
	EntityAllocation = "Allocation"
	EntityException  = "Exception"
	EntitySettings   = "Settings"
)

const auditIDPrefix = "AUD"

// maxAuditValueLen bounds the old/new value columns of an audit entry.
const maxAuditValueLen = 200

func truncateAuditValue(s string) string {
	if len(s) <= maxAuditValueLen {
		return s
	}
	return s[:maxAuditValueLen-3] + "..."
}

// newAuditRecord mints an ID and builds an audit entry. The caller appends it
// (or hands it to an atomic graph write) after all validation has passed.
func newAuditRecord(ctx context.Context, audits secondary.AuditRepository, entityType, entityID, action, oldValue, newValue, changedBy string) (*secondary.AuditRecord, error) {
	ids, err := audits.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit ids: %w", err)
	}
	return &secondary.AuditRecord{
		ID:         identifier.NextID(auditIDPrefix, ids),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		OldValue:   truncateAuditValue(oldValue),
		NewValue:   truncateAuditValue(newValue),
		ChangedBy:  changedBy,
		Timestamp:  time.Now(),
	}, nil
}

// appendAudit mints and appends an audit entry in one step.
func appendAudit(ctx context.Context, audits secondary.AuditRepository, entityType, entityID, action, oldValue, newValue, changedBy string) error {
	rec, err := newAuditRecord(ctx, audits, entityType, entityID, action, oldValue, newValue, changedBy)
	if err != nil {
		return err
	}
	if err := audits.Append(ctx, rec); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// resolveActor determines who a mutation is attributed to: the explicit
// changed-by from the request, the actor on the context, or the configured
// current user, in that order.
func resolveActor(ctx context.Context, explicit string, settings secondary.SettingsRepository) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if actor := ctxutil.ActorFromContext(ctx); actor != "" {
		return actor, nil
	}
	user, err := settings.Get(ctx, secondary.SettingCurrentUser)
	if err != nil {
		return "", fmt.Errorf("failed to resolve acting user: %w", err)
	}
	return user, nil
}
