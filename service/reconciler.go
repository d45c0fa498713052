package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"event_ticketing/constants"
	"event_ticketing/model"
	"event_ticketing/monitoring"
)

type WebhookStatus string

const (
	WebhookSuccess          WebhookStatus = "success"
	WebhookAlreadyCompleted WebhookStatus = "already_completed"
	WebhookOrderNotFound    WebhookStatus = "order_not_found"
	WebhookAmountMismatch   WebhookStatus = "amount_mismatch"
	WebhookCompletionFailed WebhookStatus = "completion_failed"
	WebhookIgnored          WebhookStatus = "ignored"
	WebhookError            WebhookStatus = "error"
)

// WebhookOutcome is the response owed to the payment provider.
type WebhookOutcome struct {
	HTTPStatus int           `json:"-"`
	Status     WebhookStatus `json:"status"`
	Message    string        `json:"message,omitempty"`
}

func processed(status WebhookStatus, message string) WebhookOutcome {
	return WebhookOutcome{HTTPStatus: http.StatusOK, Status: status, Message: message}
}

func rejected(httpStatus int, message string) WebhookOutcome {
	return WebhookOutcome{HTTPStatus: httpStatus, Status: WebhookError, Message: message}
}

func (o WebhookOutcome) metricLabel() string {
	switch o.HTTPStatus {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	}
	return string(o.Status)
}

type PaymentSecretSource interface {
	PaymentSecret(ctx context.Context) (string, error)
}

type Completer interface {
	Complete(ctx context.Context, orderID string) error
}

// PaymentReconciler applies signed payment provider callbacks to orders.
type PaymentReconciler struct {
	secrets   PaymentSecretSource
	orders    OrderPaymentStore
	completer Completer
	audit     WebhookEventRecorder
	publisher OrderPublisher
	log       *slog.Logger
}

func NewPaymentReconciler(
	secrets PaymentSecretSource,
	orders OrderPaymentStore,
	completer Completer,
	audit WebhookEventRecorder,
	publisher OrderPublisher,
	log *slog.Logger,
) *PaymentReconciler {
	return &PaymentReconciler{
		secrets:   secrets,
		orders:    orders,
		completer: completer,
		audit:     audit,
		publisher: publisher,
		log:       log,
	}
}

// VerifySignature reports whether signature is the hex HMAC-SHA512 of body under secret.
func VerifySignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (r *PaymentReconciler) Reconcile(ctx context.Context, body []byte, signature string) (outcome WebhookOutcome) {
	started := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("webhook processing panicked", slog.Any("panic", rec))
			outcome = rejected(http.StatusInternalServerError, "internal error")
		}
		monitoring.RecordWebhook(outcome.metricLabel(), started)
	}()

	signature = strings.TrimSpace(signature)
	if signature == "" {
		return rejected(http.StatusBadRequest, "missing signature")
	}

	secret, err := r.secrets.PaymentSecret(ctx)
	if err != nil {
		r.log.Error("resolve payment secret", slog.String("error", err.Error()))
		return rejected(http.StatusInternalServerError, "internal error")
	}
	if !VerifySignature(secret, body, signature) {
		r.log.Warn("webhook signature mismatch")
		return rejected(http.StatusUnauthorized, "invalid signature")
	}

	var payload model.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		outcome = rejected(http.StatusInternalServerError, "invalid payload")
		r.record(ctx, body, payload, outcome)
		return outcome
	}

	outcome = r.dispatch(ctx, payload)
	r.record(ctx, body, payload, outcome)
	return outcome
}

func (r *PaymentReconciler) dispatch(ctx context.Context, payload model.WebhookPayload) WebhookOutcome {
	if payload.Event == "" || payload.Data.Reference == "" || payload.Data.Amount == nil {
		return rejected(http.StatusBadRequest, "missing required fields")
	}

	switch payload.Event {
	case constants.PAYMENT_EVENT_CHARGE_SUCCESS:
		return r.chargeSucceeded(ctx, payload.Data.Reference, *payload.Data.Amount)
	case constants.PAYMENT_EVENT_CHARGE_FAILED:
		r.chargeFailed(ctx, payload.Data.Reference)
		return processed(WebhookSuccess, "")
	default:
		return processed(WebhookIgnored, fmt.Sprintf("event %s not handled", payload.Event))
	}
}

func (r *PaymentReconciler) chargeSucceeded(ctx context.Context, reference string, amount int64) WebhookOutcome {
	log := r.log.With(slog.String("reference", reference))

	order, err := r.orders.FindByPaymentReference(ctx, reference)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			log.Info("webhook for unknown order")
			return processed(WebhookOrderNotFound, "order not found")
		}
		log.Error("load order", slog.String("error", err.Error()))
		return rejected(http.StatusInternalServerError, "internal error")
	}

	if order.PaymentStatus == model.PaymentCompleted {
		return processed(WebhookAlreadyCompleted, "order already completed")
	}

	if expected := MinorUnits(order.TotalAmount); expected != amount {
		log.Warn("webhook amount mismatch", slog.Int64("expected", expected), slog.Int64("paid", amount))
		return processed(WebhookAmountMismatch, "amount mismatch")
	}

	if err := r.completer.Complete(ctx, order.ID); err != nil {
		if errors.Is(err, model.ErrOrderAlreadyCompleted) {
			return processed(WebhookAlreadyCompleted, "order already completed")
		}
		log.Error("complete order", slog.String("order_id", order.ID), slog.String("error", err.Error()))
		return processed(WebhookCompletionFailed, "order completion failed")
	}

	log.Info("order completed", slog.String("order_id", order.ID))
	return processed(WebhookSuccess, "")
}

// chargeFailed marks the order FAILED when it is still PENDING. Errors are
// only logged.
func (r *PaymentReconciler) chargeFailed(ctx context.Context, reference string) {
	log := r.log.With(slog.String("reference", reference))

	changed, err := r.orders.MarkFailedByReference(ctx, reference)
	if err != nil {
		log.Warn("mark order failed", slog.String("error", err.Error()))
		return
	}
	if !changed {
		return
	}

	order, err := r.orders.FindByPaymentReference(ctx, reference)
	if err != nil {
		return
	}
	if err := r.publisher.PublishOrderUpdate(context.WithoutCancel(ctx), model.OrderUpdate{
		OrderID:       order.ID,
		PaymentStatus: model.PaymentFailed,
		At:            time.Now().UTC(),
	}); err != nil {
		log.Warn("publish order update", slog.String("error", err.Error()))
	}
}

func (r *PaymentReconciler) record(ctx context.Context, body []byte, payload model.WebhookPayload, outcome WebhookOutcome) {
	event := &model.WebhookEvent{
		Event:          payload.Event,
		Reference:      payload.Data.Reference,
		PayloadJSON:    string(body),
		SignatureValid: true,
		Outcome:        string(outcome.Status),
		ProcessedAt:    time.Now().UTC(),
	}
	if event.Event == "" {
		event.Event = "unknown"
	}
	if err := r.audit.Record(context.WithoutCancel(ctx), event); err != nil {
		r.log.Warn("record webhook event", slog.String("error", err.Error()))
	}
}
