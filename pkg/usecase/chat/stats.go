package chat

import (
	"context"
	"math"

	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// OwnerStats aggregates usage across all active conversations of a user
type OwnerStats struct {
	TotalConversations int
	TotalMessages      int
	TotalTokensUsed    int
	AverageMessages    float64
}

// Stats computes owner-level statistics. Token totals come from the stored
// conversation counters, not from re-reading messages. The average is rounded
// to two decimal places and is 0 when the user has no conversations.
func (u *UseCase) Stats(ctx context.Context, ownerID model.UserID) (*OwnerStats, error) {
	convs, err := u.repo.ListConversationsByOwner(ctx, ownerID, model.ConversationStatusActive)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list conversations", goerr.V("owner_id", ownerID))
	}

	stats := &OwnerStats{TotalConversations: len(convs)}
	for _, conv := range convs {
		count, err := u.repo.CountMessages(ctx, conv.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to count messages", goerr.V("conversation_id", conv.ID))
		}
		stats.TotalMessages += count
		stats.TotalTokensUsed += conv.Metadata.TotalTokensUsed
	}

	if stats.TotalConversations > 0 {
		avg := float64(stats.TotalMessages) / float64(stats.TotalConversations)
		stats.AverageMessages = math.Round(avg*100) / 100
	}

	return stats, nil
}
