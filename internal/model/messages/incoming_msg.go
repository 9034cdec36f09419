package messages

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/logger"
)

const (
	errorMessage     = "Sorry, something wrong happened..."
	notOwnerMessage  = "Sorry, this bot keeps somebody else's finances"
	ownerCheckStatus = "refused"
)

type messageSender interface {
	SendMessage(text string, userID int64) error
}

type MessageHandler interface {
	HandleMessage(ctx context.Context, text string, userID int64) (string, error)
}

type config interface {
	OwnerID() int64
}

type Service struct {
	tgClient messageSender
	handler  MessageHandler
	owner    int64
}

func NewService(tgClient messageSender, handler MessageHandler, config config) *Service {
	return &Service{
		tgClient: tgClient,
		handler:  handler,
		owner:    config.OwnerID(),
	}
}

type Message struct {
	Text   string
	UserID int64
}

func (s *Service) HandleIncomingMessage(ctx context.Context, msg Message) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "handleMessage")
	defer span.Finish()

	if s.owner != 0 && msg.UserID != s.owner {
		logger.Warn("message from a stranger", zap.Int64("user", msg.UserID))
		observeStatus(ownerCheckStatus)
		return s.tgClient.SendMessage(notOwnerMessage, msg.UserID)
	}

	start := time.Now()
	err := s.handle(ctx, msg)
	elapsed := time.Since(start)

	observeResponse(elapsed, err != nil)
	if err != nil {
		ext.Error.Set(span, true)
	}
	return err
}

func (s *Service) handle(ctx context.Context, msg Message) error {
	resp, err := s.handler.HandleMessage(ctx, msg.Text, msg.UserID)
	if err != nil {
		text := errorMessage
		if resp != "" {
			text += "\n" + resp
		}
		_ = s.tgClient.SendMessage(text, msg.UserID)
		return err
	}
	return s.tgClient.SendMessage(resp, msg.UserID)
}
