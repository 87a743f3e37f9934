package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/property-leads-api/pkg/log"
)

// NoopSender only logs. Used when no provider key is configured.
type NoopSender struct{}

func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

func (s *NoopSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	log.ForContext(ctx).WithField("subject", req.Subject).Debugf("mailer: noop send to %v", req.To)
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}
