package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/stan.go"

	"tixswap/internal/models"
	"tixswap/internal/repository"
)

type Handlers struct {
	repos *repository.Repositories
}

func NewHandlers(repos *repository.Repositories) *Handlers {
	return &Handlers{repos: repos}
}

// HandleTicketEvent records one lifecycle event in the activity trail. The
// subject doubles as the action name. The message is acked even when the
// insert fails: the audit trail is best-effort and must not wedge the queue.
func (h *Handlers) HandleTicketEvent(subject string) stan.MsgHandler {
	return func(m *stan.Msg) {
		var event models.TicketEvent
		if err := json.Unmarshal(m.Data, &event); err != nil {
			slog.Error("Failed to unmarshal ticket event", "subject", subject, "error", err)
			m.Ack()
			return
		}

		slog.Info("Processing ticket event", "subject", subject, "ticket_id", event.TicketID)

		activity := &models.TicketActivity{
			TicketID:   event.TicketID,
			Action:     subject,
			OccurredAt: event.Timestamp,
		}
		if event.ActorID != "" {
			activity.ActorID = &event.ActorID
		}
		if event.TargetUserID != "" {
			detail := fmt.Sprintf("target_user=%s status=%s", event.TargetUserID, event.TicketStatus)
			activity.Detail = &detail
		} else if event.TicketStatus != "" {
			detail := fmt.Sprintf("status=%s", event.TicketStatus)
			activity.Detail = &detail
		}

		if err := h.repos.Activity.Insert(context.Background(), activity); err != nil {
			slog.Error("Failed to record ticket activity",
				"subject", subject, "ticket_id", event.TicketID, "error", err)
		}

		m.Ack()
	}
}
