package web

import (
	"context"
	"fmt"

	"github.com/ShardBotStudio/ShardDashGo/pkg/logger"
	"github.com/ShardBotStudio/ShardDashGo/pkg/models"
)

// audit appends an audit entry for a completed action. The action itself
// already succeeded, so a failed audit write is logged rather than turned
// into a request error.
func (api *API) audit(ctx context.Context, entry *models.AuditLog) {
	if err := api.Logs.AddAudit(ctx, entry); err != nil {
		logger.Error(fmt.Sprintf("Failed to write audit entry %s/%s: %v",
			entry.GuildID, entry.ActionType, err), "Audit")
	}
}
