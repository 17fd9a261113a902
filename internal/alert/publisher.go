package alert

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/NikhilShimpy/AskSIEM/internal/model"
)

// AlertSubject is the NATS subject danger insights are published to.
const AlertSubject = "asksiem.alerts"

// Publisher forwards danger-level insights to NATS so downstream responders
// can react without polling the query API. A nil Publisher is a no-op, so
// the pipeline never depends on a broker being configured.
type Publisher struct {
	natsConn *nats.Conn
	logger   *slog.Logger
}

// NewPublisher creates a publisher over an established NATS connection.
func NewPublisher(natsConn *nats.Conn, logger *slog.Logger) *Publisher {
	return &Publisher{natsConn: natsConn, logger: logger}
}

// alertPayload is the published wire form of an insight.
type alertPayload struct {
	Intent  model.Intent  `json:"intent"`
	Query   string        `json:"query"`
	Insight model.Insight `json:"insight"`
}

// PublishDangerInsights publishes every danger-level insight from a query
// result. Best-effort: the first publish error is returned but callers are
// expected to log it rather than fail the query.
func (p *Publisher) PublishDangerInsights(result *model.QueryResult) error {
	if p == nil || p.natsConn == nil || !p.natsConn.IsConnected() {
		return nil
	}

	for _, insight := range result.Results.Insights {
		if insight.Type != model.InsightDanger {
			continue
		}

		payload, err := json.Marshal(alertPayload{
			Intent:  result.ParsedQuery.Intent,
			Query:   result.Query,
			Insight: insight,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal alert: %w", err)
		}

		headers := nats.Header{}
		headers.Set("x-intent", string(result.ParsedQuery.Intent))
		headers.Set("x-insight-type", string(insight.Type))
		headers.Set("x-insight-title", insight.Title)

		msg := &nats.Msg{Subject: AlertSubject, Data: payload, Header: headers}
		if err := p.natsConn.PublishMsg(msg); err != nil {
			return fmt.Errorf("failed to publish alert: %w", err)
		}

		p.logger.Info("Published alert", "title", insight.Title, "intent", result.ParsedQuery.Intent)
	}
	return nil
}
