package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rajivgeraev/deals-api/internal/logger"
	"github.com/rajivgeraev/deals-api/internal/models"
)

// PushTitle заголовок push-уведомления о похожем объявлении
const PushTitle = "Similar deal available"

// PushNotification сообщение для внешнего отправителя FCM
type PushNotification struct {
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Tokens []string          `json:"tokens"`
	Data   map[string]string `json:"data"`
}

// OwnerFinder ищет владельцев объявлений, подходящих под новое
type OwnerFinder interface {
	FindMatchingOwners(ctx context.Context, q models.MatchQuery) ([]uuid.UUID, error)
}

// TokenSource возвращает FCM-токены пользователей
type TokenSource interface {
	FCMTokens(ctx context.Context, userIDs []uuid.UUID) ([]string, error)
}

// Publisher отправляет сообщение в брокер
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Dispatcher рассылает уведомления о новых объявлениях владельцам встречных объявлений
type Dispatcher struct {
	owners    OwnerFinder
	tokens    TokenSource
	publisher Publisher
	subject   string
	timeout   time.Duration
	log       logger.Logger
	wg        sync.WaitGroup
}

// NewDispatcher создает новый экземпляр Dispatcher
func NewDispatcher(owners OwnerFinder, tokens TokenSource, publisher Publisher, subject string, timeout time.Duration, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		owners:    owners,
		tokens:    tokens,
		publisher: publisher,
		subject:   subject,
		timeout:   timeout,
		log:       log.WithFields(logger.Fields{"component": "notification"}),
	}
}

// ListingCreated запускает рассылку в фоне и сразу возвращает управление.
// Из ctx берется только логгер запроса, чтобы сохранить trace_id.
func (d *Dispatcher) ListingCreated(ctx context.Context, p models.Property) {
	log := d.log
	if reqLog, ok := logger.Lookup(ctx); ok {
		log = reqLog.WithFields(logger.Fields{"component": "notification"})
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(logger.ContextWithLogger(context.Background(), log), d.timeout)
		defer cancel()

		if err := d.Notify(ctx, p); err != nil {
			log.Error("notification dispatch failed", err, logger.Fields{"property_id": p.ID})
		}
	}()
}

// Wait дожидается завершения запущенных рассылок
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Notify находит получателей и публикует одно уведомление.
// Для purpose без встречного (rent) ничего не делает.
func (d *Dispatcher) Notify(ctx context.Context, p models.Property) error {
	complement, ok := p.Purpose.Complement()
	if !ok {
		return nil
	}

	owners, err := d.owners.FindMatchingOwners(ctx, models.MatchQuery{
		PropertyType:      p.PropertyType,
		Purpose:           complement,
		City:              p.City,
		Location:          p.Location,
		ExcludePropertyID: p.ID,
		ExcludeOwnerID:    p.UserID,
	})
	if err != nil {
		return fmt.Errorf("find matching owners: %w", err)
	}
	if len(owners) == 0 {
		return nil
	}

	tokens, err := d.tokens.FCMTokens(ctx, owners)
	if err != nil {
		return fmt.Errorf("load fcm tokens: %w", err)
	}

	valid := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != "" {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	msg := PushNotification{
		Title:  PushTitle,
		Body:   p.Title,
		Tokens: valid,
		Data:   map[string]string{"ticket_id": p.ID.String()},
	}
	if err := d.publisher.Publish(ctx, d.subject, msg); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("notification published", logger.Fields{
		"property_id": p.ID,
		"recipients":  len(valid),
	})
	return nil
}
