// Package notify pushes operator alerts to an external webhook. Partial
// operations are not compensated automatically, so someone has to hear
// about them.
package notify

import (
	"time"

	"vph-backend/apperrors"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type Notifier struct {
	client *resty.Client
	url    string
	log    *zap.Logger
}

// New builds a notifier posting to webhookURL. An empty URL disables it.
func New(webhookURL string, log *zap.Logger) *Notifier {
	n := &Notifier{url: webhookURL, log: log}
	if webhookURL != "" {
		n.client = resty.New().
			SetTimeout(5 * time.Second).
			SetRetryCount(2)
	}
	return n
}

type partialAlert struct {
	Kind      string `json:"kind"`
	Operation string `json:"operation"`
	Done      string `json:"done"`
	Failed    string `json:"failed"`
	Detail    string `json:"detail"`
	At        string `json:"at"`
}

// PartialOperation reports a half-applied operation for manual
// reconciliation. Delivery is best effort; failures are logged only.
func (n *Notifier) PartialOperation(p *apperrors.PartialOperation) {
	if n == nil || n.client == nil {
		return
	}
	alert := partialAlert{
		Kind:      "partial_operation",
		Operation: p.Op,
		Done:      p.Done,
		Failed:    p.Failed,
		Detail:    p.Error(),
		At:        time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := n.client.R().SetBody(alert).Post(n.url); err != nil {
		n.log.Warn("partial operation alert delivery failed",
			zap.String("operation", p.Op), zap.Error(err))
	}
}
