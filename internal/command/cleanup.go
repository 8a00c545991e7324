package command

import (
	"fmt"
	"strings"
	"time"
)

const (
	// HistoryWindow is how many recent messages a cleanup pass looks at.
	HistoryWindow = 100
	// bulkDeleteMaxAge is the platform's cut-off for bulk deletion.
	bulkDeleteMaxAge = 14 * 24 * time.Hour
)

// DeleteRecentBy deletes up to max of authorID's messages among the last
// HistoryWindow in the channel, newest first. Messages too old for bulk
// deletion are skipped. It returns how many were deleted.
func DeleteRecentBy(p Platform, channelID, authorID string, max int) (int, error) {
	msgs, err := p.RecentMessages(channelID, HistoryWindow)
	if err != nil {
		return 0, fmt.Errorf("fetch messages in %s: %w", channelID, err)
	}

	cutoff := Now().Add(-bulkDeleteMaxAge)
	var ids []string
	for _, m := range msgs {
		if len(ids) == max {
			break
		}
		if m == nil || m.Author == nil || m.Author.ID != authorID {
			continue
		}
		if !m.Timestamp.IsZero() && m.Timestamp.Before(cutoff) {
			continue
		}
		ids = append(ids, m.ID)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := p.BulkDelete(channelID, ids); err != nil {
		return 0, fmt.Errorf("bulk delete %d messages in %s: %w", len(ids), channelID, err)
	}
	return len(ids), nil
}

// JoinReason joins reason tokens, falling back to Replies.NoReason.
func JoinReason(tokens []string) string {
	if reason := strings.Join(tokens, " "); reason != "" {
		return reason
	}
	return Replies.NoReason
}
