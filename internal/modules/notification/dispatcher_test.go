package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"homeservices/internal/domain"
)

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) AdminIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserDirectory) IDsByRole(ctx context.Context, role domain.UserRole) ([]string, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent map[string][]domain.AppNotification
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{sent: map[string][]domain.AppNotification{}}
}

func (p *recordingPublisher) Publish(userID string, n domain.AppNotification) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent[userID] = append(p.sent[userID], n)
	return true
}

type memoryRepo struct {
	items   []domain.AppNotification
	failErr error
}

func (r *memoryRepo) CreateBatch(_ context.Context, items []domain.AppNotification) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.items = append(r.items, items...)
	return nil
}

func (r *memoryRepo) ListByUser(context.Context, string, int) ([]domain.AppNotification, error) {
	return r.items, nil
}
func (r *memoryRepo) UnreadCount(context.Context, string) (int64, error) { return 0, nil }
func (r *memoryRepo) MarkAllRead(context.Context, string) (int64, error) { return 0, nil }
func (r *memoryRepo) MarkRead(context.Context, string, string) error { return nil }

func recipientsOf(ns []domain.AppNotification) map[string]domain.NotificationType {
	out := make(map[string]domain.NotificationType, len(ns))
	for _, n := range ns {
		out[n.UserID] = n.Type
	}
	return out
}

func testBooking() *domain.ServiceRequest {
	return &domain.ServiceRequest{
		ID:           "b1",
		CustomerID:   "cust",
		CustomerName: "Alice",
		ProviderID:   "prov",
		ProviderName: "Bob",
		Category:     "Plumbing",
		Price:        1200,
	}
}

func TestBuildBookingCreatedReachesCustomerAndAdmins(t *testing.T) {
	b := testBooking()
	b.ProviderID = ""

	ns := Build(domain.Event{Type: domain.EventBookingCreated, Booking: b}, []string{"a1", "a2"})

	assert.Equal(t, map[string]domain.NotificationType{
		"cust": domain.NotifSuccess,
		"a1":   domain.NotifInfo,
		"a2":   domain.NotifInfo,
	}, recipientsOf(ns))
	assert.Equal(t, "notif.booking.created.title", ns[0].TitleKey)
	assert.Equal(t, "notif.booking.created.message", ns[0].MessageKey)
	assert.Equal(t, "b1", ns[0].RelatedID)
}

func TestBuildOfferMadeCarriesRange(t *testing.T) {
	b := testBooking()
	b.ProviderID = ""
	offer := &domain.ServiceOffer{ProviderID: "prov2", ProviderName: "Carl", MinPrice: 300, MaxPrice: 400}

	ns := Build(domain.Event{Type: domain.EventOfferMade, Booking: b, Offer: offer}, nil)

	require.Len(t, ns, 1)
	assert.Equal(t, "cust", ns[0].UserID)
	assert.Equal(t, "Carl", ns[0].Params["providerName"])
	assert.Equal(t, "300", ns[0].Params["minPrice"])
	assert.Equal(t, "400", ns[0].Params["maxPrice"])
}

func TestBuildOfferDeclinedConfirmsToActorAndWarnsProvider(t *testing.T) {
	offer := &domain.ServiceOffer{ProviderID: "prov2"}
	ns := Build(domain.Event{Type: domain.EventOfferDeclined, ActorID: "cust", Booking: testBooking(), Offer: offer}, nil)

	assert.Equal(t, map[string]domain.NotificationType{
		"cust":  domain.NotifInfo,
		"prov2": domain.NotifWarning,
	}, recipientsOf(ns))
}

func TestBuildJobDeclinedNotifiesCustomer(t *testing.T) {
	b := testBooking()
	b.ProviderID = ""
	ns := Build(domain.Event{Type: domain.EventJobDeclined, Booking: b}, nil)

	require.Len(t, ns, 1)
	assert.Equal(t, "cust", ns[0].UserID)
	assert.Equal(t, domain.NotifWarning, ns[0].Type)
}

func TestBuildCancelledReachesBothParties(t *testing.T) {
	ns := Build(domain.Event{Type: domain.EventBookingCancelled, Booking: testBooking()}, nil)
	assert.Equal(t, map[string]domain.NotificationType{
		"cust": domain.NotifInfo,
		"prov": domain.NotifWarning,
	}, recipientsOf(ns))

	open := testBooking()
	open.ProviderID = ""
	ns = Build(domain.Event{Type: domain.EventBookingCancelled, Booking: open}, nil)
	assert.Len(t, ns, 1)
}

func TestBuildMessageSentGoesToOtherParty(t *testing.T) {
	b := testBooking()
	long := "The pipe under the kitchen sink is leaking again"

	ns := Build(domain.Event{
		Type:    domain.EventMessageSent,
		Booking: b,
		Message: &domain.Message{SenderID: "cust", SenderName: "Alice", Text: long},
	}, nil)
	require.Len(t, ns, 1)
	assert.Equal(t, "prov", ns[0].UserID)
	assert.Equal(t, "Alice", ns[0].Params["sender"])
	assert.Equal(t, "The pipe under the kitchen sin...", ns[0].Params["preview"])

	ns = Build(domain.Event{
		Type:    domain.EventMessageSent,
		Booking: b,
		Message: &domain.Message{SenderID: "prov", SenderName: "Bob", Text: "On my way"},
	}, nil)
	require.Len(t, ns, 1)
	assert.Equal(t, "cust", ns[0].UserID)
	assert.Equal(t, "On my way", ns[0].Params["preview"])
}

func TestBuildMessageOnOpenBookingFromCustomerHasNoRecipient(t *testing.T) {
	b := testBooking()
	b.ProviderID = ""

	ns := Build(domain.Event{
		Type:    domain.EventMessageSent,
		Booking: b,
		Message: &domain.Message{SenderID: "cust", Text: "hello?"},
	}, nil)
	assert.Empty(t, ns)
}

func TestBuildFeeAndWithdrawalEvents(t *testing.T) {
	fee := &domain.FeeRequest{ID: "f1", ProviderID: "prov", Amount: 500, BookingCategory: "Plumbing"}
	w := &domain.Withdrawal{ID: "w1", ProviderID: "prov", Amount: 300, Method: "PayPal"}

	cases := []struct {
		ev      domain.Event
		user    string
		kind    domain.NotificationType
		related string
	}{
		{domain.Event{Type: domain.EventFeeCreated, Fee: fee, Booking: testBooking()}, "prov", domain.NotifWarning, "f1"},
		{domain.Event{Type: domain.EventFeeApproved, Fee: fee}, "prov", domain.NotifSuccess, "f1"},
		{domain.Event{Type: domain.EventFeeRejected, Fee: fee}, "prov", domain.NotifError, "f1"},
		{domain.Event{Type: domain.EventFeeUpdated, Fee: fee}, "prov", domain.NotifInfo, "f1"},
		{domain.Event{Type: domain.EventFeeReminder, Fee: fee}, "prov", domain.NotifWarning, "f1"},
		{domain.Event{Type: domain.EventWithdrawalApproved, Withdrawal: w}, "prov", domain.NotifSuccess, "w1"},
		{domain.Event{Type: domain.EventWithdrawalRejected, Withdrawal: w}, "prov", domain.NotifError, "w1"},
	}

	for _, tc := range cases {
		ns := Build(tc.ev, []string{"admin"})
		require.Len(t, ns, 1, string(tc.ev.Type))
		assert.Equal(t, tc.user, ns[0].UserID, string(tc.ev.Type))
		assert.Equal(t, tc.kind, ns[0].Type, string(tc.ev.Type))
		assert.Equal(t, tc.related, ns[0].RelatedID, string(tc.ev.Type))
	}

	ns := Build(domain.Event{Type: domain.EventWithdrawalRequested, Withdrawal: w}, []string{"a1", "a2"})
	assert.Equal(t, map[string]domain.NotificationType{"a1": domain.NotifInfo, "a2": domain.NotifInfo}, recipientsOf(ns))
	assert.Equal(t, "300", ns[0].Params["amount"])
	assert.Equal(t, "PayPal", ns[0].Params["method"])
}

func TestDispatchPersistsAndPublishes(t *testing.T) {
	users := new(MockUserDirectory)
	users.On("AdminIDs", mock.Anything).Return([]string{"admin"}, nil).Once()
	repo := &memoryRepo{}
	pub := newRecordingPublisher()

	d := NewDispatcher(repo, users, pub, nil)
	b := testBooking()
	d.Dispatch(context.Background(),
		domain.Event{Type: domain.EventBookingCreated, Booking: b},
		domain.Event{Type: domain.EventBookingDirectRequest, Booking: b},
	)

	assert.Len(t, repo.items, 3)
	assert.Len(t, pub.sent["admin"], 1)
	assert.Len(t, pub.sent["prov"], 1)
	assert.Len(t, pub.sent["cust"], 1)
	users.AssertExpectations(t)
}

func TestDispatchSkipsAdminLookupWhenNotNeeded(t *testing.T) {
	users := new(MockUserDirectory)
	repo := &memoryRepo{}

	NewDispatcher(repo, users, nil, nil).Dispatch(context.Background(),
		domain.Event{Type: domain.EventJobStarted, Booking: testBooking()})

	require.Len(t, repo.items, 1)
	users.AssertNotCalled(t, "AdminIDs", mock.Anything)
}

func TestDispatchSwallowsFailures(t *testing.T) {
	users := new(MockUserDirectory)
	users.On("AdminIDs", mock.Anything).Return(nil, errors.New("db down"))
	repo := &memoryRepo{failErr: errors.New("insert failed")}
	pub := newRecordingPublisher()

	assert.NotPanics(t, func() {
		NewDispatcher(repo, users, pub, nil).Dispatch(context.Background(),
			domain.Event{Type: domain.EventBookingCreated, Booking: testBooking()})
	})
	assert.Empty(t, pub.sent)
}
