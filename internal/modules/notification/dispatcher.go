package notification

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"homeservices/internal/domain"
	"homeservices/internal/pkg/logger"
)

// Dispatcher turns committed domain events into stored notifications and live pushes.
// It never returns an error: a lost notification must not undo the command that caused it.
type Dispatcher struct {
	repo  NotificationRepository
	users UserDirectory
	pub   Publisher
	log   *zap.Logger
}

func NewDispatcher(repo NotificationRepository, users UserDirectory, pub Publisher, log *zap.Logger) *Dispatcher {
	return &Dispatcher{repo: repo, users: users, pub: pub, log: logger.OrNop(log)}
}

func (d *Dispatcher) Dispatch(ctx context.Context, events ...domain.Event) {
	if len(events) == 0 {
		return
	}

	var admins []string
	if needsAdmins(events) {
		ids, err := d.users.AdminIDs(ctx)
		if err != nil {
			d.log.Warn("notification: load admins failed", zap.Error(err))
		}
		admins = ids
	}

	var out []domain.AppNotification
	for _, ev := range events {
		out = append(out, Build(ev, admins)...)
	}
	if len(out) == 0 {
		return
	}

	if err := d.repo.CreateBatch(ctx, out); err != nil {
		d.log.Warn("notification: persist failed",
			zap.Int("count", len(out)),
			zap.String("event", string(events[0].Type)),
			zap.Error(err),
		)
		return
	}

	if d.pub == nil {
		return
	}
	for _, n := range out {
		d.pub.Publish(n.UserID, n)
	}
}

type recipient struct {
	userID string
	kind   domain.NotificationType
}

// Build resolves who hears about ev and renders one notification per recipient.
func Build(ev domain.Event, admins []string) []domain.AppNotification {
	rs := recipients(ev, admins)
	if len(rs) == 0 {
		return nil
	}

	params := paramsFor(ev)
	related := relatedID(ev)

	out := make([]domain.AppNotification, 0, len(rs))
	seen := make(map[string]bool, len(rs))
	for _, r := range rs {
		if r.userID == "" || seen[r.userID] {
			continue
		}
		seen[r.userID] = true

		out = append(out, domain.AppNotification{
			UserID:     r.userID,
			TitleKey:   TitleKey(ev.Type),
			MessageKey: MessageKey(ev.Type),
			Params:     cloneParams(params),
			Type:       r.kind,
			RelatedID:  related,
		})
	}
	return out
}

func TitleKey(t domain.EventType) string   { return "notif." + string(t) + ".title" }
func MessageKey(t domain.EventType) string { return "notif." + string(t) + ".message" }

func recipients(ev domain.Event, admins []string) []recipient {
	b := ev.Booking

	switch ev.Type {
	case domain.EventBookingCreated:
		if b == nil {
			return nil
		}
		out := []recipient{{b.CustomerID, domain.NotifSuccess}}
		for _, id := range admins {
			out = append(out, recipient{id, domain.NotifInfo})
		}
		return out

	case domain.EventBookingDirectRequest:
		return toProvider(b, domain.NotifInfo)

	case domain.EventOfferMade:
		return toCustomer(b, domain.NotifInfo)

	case domain.EventOfferAccepted:
		return toOfferProvider(ev.Offer, domain.NotifSuccess)

	case domain.EventOfferSuperseded:
		return toOfferProvider(ev.Offer, domain.NotifWarning)

	case domain.EventOfferDeclined:
		out := []recipient{{ev.ActorID, domain.NotifInfo}}
		return append(out, toOfferProvider(ev.Offer, domain.NotifWarning)...)

	case domain.EventJobAccepted, domain.EventPaymentSucceeded, domain.EventJobCompleted:
		return toCustomer(b, domain.NotifSuccess)

	case domain.EventJobDeclined:
		return toCustomer(b, domain.NotifWarning)

	case domain.EventJobCancelled:
		return toCustomer(b, domain.NotifError)

	case domain.EventJobStarted:
		return toCustomer(b, domain.NotifInfo)

	case domain.EventBookingCancelled:
		return append(toCustomer(b, domain.NotifInfo), toProvider(b, domain.NotifWarning)...)

	case domain.EventBookingRated:
		return toProvider(b, domain.NotifInfo)

	case domain.EventMessageSent:
		return messageRecipients(ev)

	case domain.EventPaymentReceived:
		return toProvider(b, domain.NotifSuccess)

	case domain.EventFeeCreated, domain.EventFeeReminder:
		return toFeeProvider(ev.Fee, domain.NotifWarning)

	case domain.EventFeeApproved:
		return toFeeProvider(ev.Fee, domain.NotifSuccess)

	case domain.EventFeeRejected:
		return toFeeProvider(ev.Fee, domain.NotifError)

	case domain.EventFeeUpdated:
		return toFeeProvider(ev.Fee, domain.NotifInfo)

	case domain.EventFeeSettlementSubmitted, domain.EventWithdrawalRequested:
		out := make([]recipient, 0, len(admins))
		for _, id := range admins {
			out = append(out, recipient{id, domain.NotifInfo})
		}
		return out

	case domain.EventWithdrawalApproved:
		return toWithdrawalProvider(ev.Withdrawal, domain.NotifSuccess)

	case domain.EventWithdrawalRejected:
		return toWithdrawalProvider(ev.Withdrawal, domain.NotifError)
	}

	return nil
}

// messageRecipients notifies whichever party did not send. An admin message reaches both.
func messageRecipients(ev domain.Event) []recipient {
	b := ev.Booking
	if b == nil || ev.Message == nil {
		return nil
	}

	sender := ev.Message.SenderID
	switch sender {
	case b.CustomerID:
		return toProvider(b, domain.NotifInfo)
	case b.ProviderID:
		return toCustomer(b, domain.NotifInfo)
	}
	return append(toCustomer(b, domain.NotifInfo), toProvider(b, domain.NotifInfo)...)
}

func toCustomer(b *domain.ServiceRequest, kind domain.NotificationType) []recipient {
	if b == nil || b.CustomerID == "" {
		return nil
	}
	return []recipient{{b.CustomerID, kind}}
}

func toProvider(b *domain.ServiceRequest, kind domain.NotificationType) []recipient {
	if b == nil || b.ProviderID == "" {
		return nil
	}
	return []recipient{{b.ProviderID, kind}}
}

func toOfferProvider(o *domain.ServiceOffer, kind domain.NotificationType) []recipient {
	if o == nil {
		return nil
	}
	return []recipient{{o.ProviderID, kind}}
}

func toFeeProvider(f *domain.FeeRequest, kind domain.NotificationType) []recipient {
	if f == nil {
		return nil
	}
	return []recipient{{f.ProviderID, kind}}
}

func toWithdrawalProvider(w *domain.Withdrawal, kind domain.NotificationType) []recipient {
	if w == nil {
		return nil
	}
	return []recipient{{w.ProviderID, kind}}
}

func needsAdmins(events []domain.Event) bool {
	for _, ev := range events {
		switch ev.Type {
		case domain.EventBookingCreated, domain.EventFeeSettlementSubmitted, domain.EventWithdrawalRequested:
			return true
		}
	}
	return false
}

func paramsFor(ev domain.Event) map[string]string {
	p := map[string]string{}

	if b := ev.Booking; b != nil {
		p["bookingId"] = b.ID
		p["category"] = b.Category
		if b.CustomerName != "" {
			p["customerName"] = b.CustomerName
		}
		if b.ProviderName != "" {
			p["providerName"] = b.ProviderName
		}
		if b.Price > 0 {
			p["price"] = money(b.Price)
		}
		if ev.Type == domain.EventBookingRated && b.Rating != nil {
			p["rating"] = strconv.Itoa(*b.Rating)
		}
	}

	if o := ev.Offer; o != nil {
		p["providerName"] = o.ProviderName
		p["minPrice"] = money(o.MinPrice)
		p["maxPrice"] = money(o.MaxPrice)
	}

	if m := ev.Message; m != nil {
		p["sender"] = m.SenderName
		p["preview"] = domain.MessagePreview(m.Text)
	}

	if f := ev.Fee; f != nil {
		p["amount"] = money(f.Amount)
		p["category"] = f.BookingCategory
	}

	if w := ev.Withdrawal; w != nil {
		p["amount"] = money(w.Amount)
		p["method"] = w.Method
		if w.ProviderName != "" {
			p["providerName"] = w.ProviderName
		}
	}

	return p
}

func relatedID(ev domain.Event) string {
	switch {
	case ev.Fee != nil:
		return ev.Fee.ID
	case ev.Withdrawal != nil:
		return ev.Withdrawal.ID
	case ev.Booking != nil:
		return ev.Booking.ID
	}
	return ""
}

func money(v int64) string { return strconv.FormatInt(v, 10) }

func cloneParams(p map[string]string) map[string]string {
	out := make(map[string]string, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
