package booking

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeservices/internal/database"
	"homeservices/internal/domain"
	"homeservices/internal/repository"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recordingDispatcher) Dispatch(_ context.Context, events ...domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
}

func (r *recordingDispatcher) types() []domain.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *recordingDispatcher) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

type fixture struct {
	svc      *Service
	store    *repository.Store
	events   *recordingDispatcher
	customer *domain.User
	provider *domain.User
	rival    *domain.User
	admin    *domain.User
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenInMemory("booking_" + t.Name())
	require.NoError(t, err)

	store := repository.NewStore(db)
	ctx := context.Background()

	mk := func(name string, role domain.UserRole) *domain.User {
		u := &domain.User{Name: name, Email: name + "@example.com", Role: role, IsVerified: true}
		if role == domain.RoleProvider {
			u.Category = "Plumbing"
			u.HourlyRate = 2000
		}
		require.NoError(t, store.Users.Create(ctx, u))
		return u
	}

	require.NoError(t, store.Categories.Create(ctx, &domain.CategoryItem{Name: "Plumbing", BasePrice: 2000, IsActive: true}))
	retired := &domain.CategoryItem{Name: "Retired", BasePrice: 100, IsActive: true}
	require.NoError(t, store.Categories.Create(ctx, retired))
	retired.IsActive = false
	require.NoError(t, store.Categories.Save(ctx, retired))

	rec := &recordingDispatcher{}
	return &fixture{
		svc:      NewService(store, rec, nil),
		store:    store,
		events:   rec,
		customer: mk("alice", domain.RoleCustomer),
		provider: mk("bob", domain.RoleProvider),
		rival:    mk("carl", domain.RoleProvider),
		admin:    mk("root", domain.RoleAdmin),
	}
}

func (f *fixture) create(t *testing.T, providerID string) *domain.ServiceRequest {
	t.Helper()
	b, err := f.svc.CreateBooking(context.Background(), CreateBookingRequest{
		CustomerID:  f.customer.ID,
		Category:    "Plumbing",
		Description: "Leaking kitchen tap",
		Address:     "12 Elm St",
		ProviderID:  providerID,
	})
	require.NoError(t, err)
	return b
}

// inProgress walks a fresh open booking to IN_PROGRESS with f.provider assigned.
func (f *fixture) inProgress(t *testing.T) *domain.ServiceRequest {
	t.Helper()
	ctx := context.Background()
	b := f.create(t, "")
	_, err := f.svc.AcceptJob(ctx, b.ID, f.provider.ID)
	require.NoError(t, err)
	b, err = f.svc.UpdateStatus(ctx, b.ID, f.provider.ID, domain.BookingInProgress, 0)
	require.NoError(t, err)
	return b
}

func TestCreateBookingStartsPendingAndUnpaid(t *testing.T) {
	f := setupFixture(t)

	b := f.create(t, "")

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, domain.PaymentUnpaid, b.PaymentStatus)
	assert.Zero(t, b.Price)
	assert.Empty(t, b.Offers)
	assert.Empty(t, b.Messages)
	assert.Equal(t, "alice", b.CustomerName)
	assert.Equal(t, []domain.EventType{domain.EventBookingCreated}, f.events.types())
}

func TestCreateBookingDirectRequestNotifiesProvider(t *testing.T) {
	f := setupFixture(t)

	b := f.create(t, f.provider.ID)

	assert.Equal(t, f.provider.ID, b.ProviderID)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, []domain.EventType{domain.EventBookingCreated, domain.EventBookingDirectRequest}, f.events.types())
}

func TestCreateBookingKeepsAIEstimateAdvisory(t *testing.T) {
	f := setupFixture(t)

	b, err := f.svc.CreateBooking(context.Background(), CreateBookingRequest{
		CustomerID:  f.customer.ID,
		Category:    "Plumbing",
		Description: "Boiler",
		Address:     "1 Main",
		PriceRange:  &PriceRange{Min: 3000, Max: 5000},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3000), b.EstimateMin)
	assert.Equal(t, int64(5000), b.EstimateMax)
	assert.Zero(t, b.Price)
}

func TestCreateBookingValidation(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	base := CreateBookingRequest{
		CustomerID:  f.customer.ID,
		Category:    "Plumbing",
		Description: "Tap",
		Address:     "12 Elm St",
	}

	cases := map[string]func(r *CreateBookingRequest){
		"unknown category":   func(r *CreateBookingRequest) { r.Category = "Astrology" },
		"inactive category":  func(r *CreateBookingRequest) { r.Category = "Retired" },
		"unknown customer":   func(r *CreateBookingRequest) { r.CustomerID = "ghost" },
		"provider as client": func(r *CreateBookingRequest) { r.CustomerID = f.provider.ID },
		"unknown provider":   func(r *CreateBookingRequest) { r.ProviderID = "ghost" },
		"customer as target": func(r *CreateBookingRequest) { r.ProviderID = f.customer.ID },
		"blank description":  func(r *CreateBookingRequest) { r.Description = "   " },
		"inverted estimate":  func(r *CreateBookingRequest) { r.PriceRange = &PriceRange{Min: 500, Max: 100} },
	}

	for name, mutate := range cases {
		req := base
		mutate(&req)
		_, err := f.svc.CreateBooking(ctx, req)
		assert.ErrorIs(t, err, domain.ErrValidation, name)
	}

	all, err := f.store.Bookings.List(ctx, repository.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, f.events.types())
}

func TestAcceptSecondOfferScenario(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	b := f.create(t, "")

	b, err := f.svc.MakeOffer(ctx, b.ID, f.rival.ID, 300, 400)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingOfferMade, b.Status)

	b, err = f.svc.MakeOffer(ctx, b.ID, f.provider.ID, 500, 600)
	require.NoError(t, err)
	require.Len(t, b.Offers, 2)
	first, second := offerBy(t, b, f.rival.ID), offerBy(t, b, f.provider.ID)

	f.events.reset()
	b, err = f.svc.AcceptOffer(ctx, b.ID, second.ID, f.customer.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.BookingAccepted, b.Status)
	assert.Equal(t, int64(500), b.Price)
	assert.Equal(t, f.provider.ID, b.ProviderID)
	assert.Equal(t, "bob", b.ProviderName)

	require.Len(t, b.Offers, 2, "first offer is still present")
	assert.Equal(t, domain.OfferSuperseded, offerBy(t, b, f.rival.ID).Status)
	assert.Equal(t, domain.OfferAccepted, offerBy(t, b, f.provider.ID).Status)
	assert.Empty(t, b.PendingOffers())

	assert.Equal(t, []domain.EventType{domain.EventOfferAccepted, domain.EventOfferSuperseded}, f.events.types())

	// the superseded offer is inert
	_, err = f.svc.AcceptOffer(ctx, b.ID, first.ID, f.customer.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestAcceptOfferGuards(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	b := f.create(t, "")
	b, err := f.svc.MakeOffer(ctx, b.ID, f.provider.ID, 100, 200)
	require.NoError(t, err)
	offerID := b.Offers[0].ID

	_, err = f.svc.AcceptOffer(ctx, b.ID, offerID, f.rival.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.AcceptOffer(ctx, b.ID, "missing", f.customer.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.AcceptOffer(ctx, "missing", offerID, f.customer.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMakeOfferGuards(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	open := f.create(t, "")
	_, err := f.svc.MakeOffer(ctx, open.ID, f.provider.ID, 0, 100)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.svc.MakeOffer(ctx, open.ID, f.provider.ID, 500, 100)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.svc.MakeOffer(ctx, open.ID, f.customer.ID, 100, 200)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	direct := f.create(t, f.provider.ID)
	_, err = f.svc.MakeOffer(ctx, direct.ID, f.rival.ID, 100, 200)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.svc.MakeOffer(ctx, direct.ID, f.provider.ID, 100, 200)
	assert.NoError(t, err)

	started := f.inProgress(t)
	_, err = f.svc.MakeOffer(ctx, started.ID, f.rival.ID, 100, 200)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestSameProviderMayOfferTwice(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	b := f.create(t, "")

	_, err := f.svc.MakeOffer(ctx, b.ID, f.provider.ID, 100, 200)
	require.NoError(t, err)
	b, err = f.svc.MakeOffer(ctx, b.ID, f.provider.ID, 150, 250)
	require.NoError(t, err)
	assert.Len(t, b.PendingOffers(), 2)
}

func TestDeclineOfferFallsBackToPendingWhenNoOffersLeft(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	b := f.create(t, "")

	_, err := f.svc.MakeOffer(ctx, b.ID, f.provider.ID, 100, 200)
	require.NoError(t, err)
	b, err = f.svc.MakeOffer(ctx, b.ID, f.rival.ID, 120, 220)
	require.NoError(t, err)

	f.events.reset()
	b, err = f.svc.DeclineOffer(ctx, b.ID, offerBy(t, b, f.provider.ID).ID, f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingOfferMade, b.Status)
	require.Len(t, b.Offers, 1)
	assert.Equal(t, f.rival.ID, b.Offers[0].ProviderID)

	b, err = f.svc.DeclineOffer(ctx, b.ID, b.Offers[0].ID, f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Empty(t, b.Offers)

	assert.Equal(t, []domain.EventType{domain.EventOfferDeclined, domain.EventOfferDeclined}, f.events.types())
	assert.Equal(t, f.customer.ID, f.events.events[0].ActorID)

	_, err = f.svc.DeclineOffer(ctx, b.ID, "gone", f.customer.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAcceptJobFromOpenPoolAndDirectRequest(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	open := f.create(t, "")
	got, err := f.svc.AcceptJob(ctx, open.ID, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingAccepted, got.Status)
	assert.Equal(t, f.provider.ID, got.ProviderID)

	_, err = f.svc.AcceptJob(ctx, open.ID, f.rival.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	direct := f.create(t, f.provider.ID)
	_, err = f.svc.AcceptJob(ctx, direct.ID, f.rival.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	got, err = f.svc.AcceptJob(ctx, direct.ID, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingAccepted, got.Status)
}

func TestProviderDeclineJobReopensBooking(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	b := f.create(t, "")
	b, err := f.svc.MakeOffer(ctx, b.ID, f.provider.ID, 700, 900)
	require.NoError(t, err)
	b, err = f.svc.AcceptOffer(ctx, b.ID, b.Offers[0].ID, f.customer.ID)
	require.NoError(t, err)

	_, err = f.svc.ProviderDeclineJob(ctx, b.ID, f.rival.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	f.events.reset()
	b, err = f.svc.ProviderDeclineJob(ctx, b.ID, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Empty(t, b.ProviderID)
	assert.Zero(t, b.Price)
	assert.Equal(t, []domain.EventType{domain.EventJobDeclined}, f.events.types())

	got, err := f.svc.AcceptJob(ctx, b.ID, f.rival.ID)
	require.NoError(t, err)
	assert.Equal(t, f.rival.ID, got.ProviderID)
}

func TestJobLifecycleToCompletion(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	b := f.inProgress(t)
	assert.Equal(t, domain.BookingInProgress, b.Status)

	_, err := f.svc.UpdateStatus(ctx, b.ID, f.provider.ID, domain.BookingCompleted, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	b, err = f.svc.UpdateStatus(ctx, b.ID, f.provider.ID, domain.BookingCompleted, 1200)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)
	assert.Equal(t, int64(1200), b.Price)

	p, err := f.store.Users.GetByID(ctx, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.JobsCompleted)

	_, err = f.svc.ProviderCancelJob(ctx, b.ID, f.provider.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestUpdateStatusRestrictsTargets(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	b := f.create(t, "")
	_, err := f.svc.AcceptJob(ctx, b.ID, f.provider.ID)
	require.NoError(t, err)

	for _, to := range []domain.BookingStatus{domain.BookingCancelled, domain.BookingPending, domain.BookingAccepted, "DONE"} {
		_, err := f.svc.UpdateStatus(ctx, b.ID, f.provider.ID, to, 100)
		assert.ErrorIs(t, err, domain.ErrValidation, string(to))
	}

	_, err = f.svc.UpdateStatus(ctx, b.ID, f.provider.ID, domain.BookingCompleted, 100)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.svc.UpdateStatus(ctx, b.ID, f.rival.ID, domain.BookingInProgress, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestProviderCancelJobKeepsProvider(t *testing.T) {
	f := setupFixture(t)
	b := f.inProgress(t)

	b, err := f.svc.ProviderCancelJob(context.Background(), b.ID, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
	assert.Equal(t, f.provider.ID, b.ProviderID)
}

func TestCancelBooking(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	b := f.create(t, "")
	_, err := f.svc.CancelBooking(ctx, b.ID, f.rival.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	b, err = f.svc.CancelBooking(ctx, b.ID, f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)

	_, err = f.svc.CancelBooking(ctx, b.ID, f.customer.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	started := f.inProgress(t)
	_, err = f.svc.CancelBooking(ctx, started.ID, f.customer.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCancelBookingSupersedesOpenOffers(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	b := f.create(t, "")

	_, err := f.svc.MakeOffer(ctx, b.ID, f.provider.ID, 100, 200)
	require.NoError(t, err)
	_, err = f.svc.MakeOffer(ctx, b.ID, f.rival.ID, 120, 220)
	require.NoError(t, err)

	f.events.reset()
	b, err = f.svc.CancelBooking(ctx, b.ID, f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
	assert.Equal(t, domain.OfferSuperseded, offerBy(t, b, f.provider.ID).Status)
	assert.Equal(t, domain.OfferSuperseded, offerBy(t, b, f.rival.ID).Status)
	assert.Equal(t, []domain.EventType{
		domain.EventBookingCancelled, domain.EventOfferSuperseded, domain.EventOfferSuperseded,
	}, f.events.types())

	open, err := f.svc.OpenOffers(ctx, b.ID, Actor{ID: f.customer.ID, Role: domain.RoleCustomer})
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestDeclineOfferRequiresOpenBooking(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	b := f.create(t, "")
	b, err := f.svc.MakeOffer(ctx, b.ID, f.provider.ID, 100, 200)
	require.NoError(t, err)
	offerID := offerBy(t, b, f.provider.ID).ID
	_, err = f.svc.CancelBooking(ctx, b.ID, f.customer.ID)
	require.NoError(t, err)

	f.events.reset()
	_, err = f.svc.DeclineOffer(ctx, b.ID, offerID, f.customer.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Empty(t, f.events.types())

	b, err = f.store.Bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, b.Offers, 1)
}

func TestRateServiceTwiceIsRejected(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	b := f.inProgress(t)

	_, err := f.svc.RateService(ctx, b.ID, f.customer.ID, 5, "early")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.svc.UpdateStatus(ctx, b.ID, f.provider.ID, domain.BookingCompleted, 900)
	require.NoError(t, err)

	_, err = f.svc.RateService(ctx, b.ID, f.customer.ID, 6, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	rated, err := f.svc.RateService(ctx, b.ID, f.customer.ID, 4, "Great work")
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)

	_, err = f.svc.RateService(ctx, b.ID, f.customer.ID, 1, "Changed my mind")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	got, err := f.store.Bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 4, *got.Rating)
	assert.Equal(t, "Great work", got.Review)

	p, err := f.store.Users.GetByID(ctx, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.RatingCount)
	assert.InDelta(t, 4.0, p.Rating, 0.0001)
}

func TestMessagesAndUnreadCount(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	b := f.create(t, "")

	f.events.reset()
	_, err := f.svc.SendMessage(ctx, b.ID, f.customer.ID, "Is anyone available tomorrow?")
	require.NoError(t, err)

	_, err = f.svc.SendMessage(ctx, b.ID, f.rival.ID, "Me!")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.svc.SendMessage(ctx, b.ID, f.customer.ID, "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.AcceptJob(ctx, b.ID, f.provider.ID)
	require.NoError(t, err)

	n, err := f.svc.UnreadMessageCount(ctx, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = f.svc.SendMessage(ctx, b.ID, f.provider.ID, "Yes, 9am works")
	require.NoError(t, err)
	_, err = f.svc.SendMessage(ctx, b.ID, f.provider.ID, "See you then")
	require.NoError(t, err)

	n, err = f.svc.UnreadMessageCount(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	updated, err := f.svc.MarkMessagesRead(ctx, b.ID, Actor{ID: f.customer.ID, Role: domain.RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	n, err = f.svc.UnreadMessageCount(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	// the customer's own message is still unread for the provider
	n, err = f.svc.UnreadMessageCount(ctx, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	msgs, err := f.svc.Messages(ctx, b.ID, Actor{ID: f.admin.ID, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, msgs, 3)

	got, err := f.svc.Get(ctx, b.ID, Actor{ID: f.provider.ID, Role: domain.RoleProvider})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingAccepted, got.Status, "messages never move the booking")
}

func TestOpenBookingReadableOutsideProviderCategory(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	cleaner := &domain.User{Name: "dana", Email: "dana@example.com", Role: domain.RoleProvider, IsVerified: true, Category: "Cleaning", HourlyRate: 1500}
	require.NoError(t, f.store.Users.Create(ctx, cleaner))
	actor := Actor{ID: cleaner.ID, Role: domain.RoleProvider}

	b := f.create(t, "")

	list, err := f.svc.List(ctx, actor, "")
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := f.svc.Get(ctx, b.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = f.svc.AcceptJob(ctx, b.ID, f.provider.ID)
	require.NoError(t, err)
	_, err = f.svc.Get(ctx, b.ID, actor)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListAndVisibilityByRole(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	open := f.create(t, "")
	mine := f.create(t, "")
	_, err := f.svc.AcceptJob(ctx, mine.ID, f.provider.ID)
	require.NoError(t, err)
	direct := f.create(t, f.provider.ID)

	provider := Actor{ID: f.provider.ID, Role: domain.RoleProvider}
	rival := Actor{ID: f.rival.ID, Role: domain.RoleProvider}

	list, err := f.svc.List(ctx, provider, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{open.ID, mine.ID, direct.ID}, ids(list))

	list, err = f.svc.List(ctx, rival, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{open.ID}, ids(list))

	list, err = f.svc.List(ctx, Actor{ID: f.customer.ID, Role: domain.RoleCustomer}, domain.BookingAccepted)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{mine.ID}, ids(list))

	list, err = f.svc.List(ctx, Actor{ID: f.admin.ID, Role: domain.RoleAdmin}, "")
	require.NoError(t, err)
	assert.Len(t, list, 3)

	_, err = f.svc.Get(ctx, mine.ID, rival)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.svc.Get(ctx, open.ID, rival)
	assert.NoError(t, err)
}

// Every status change produced by any command follows an edge of the lifecycle graph.
func TestStatusOnlyFollowsGraphEdges(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	type command func(id string) (*domain.ServiceRequest, error)
	offerID := func(id string) string {
		b, err := f.store.Bookings.GetByID(ctx, id)
		require.NoError(t, err)
		if p := b.PendingOffers(); len(p) > 0 {
			return p[0].ID
		}
		return "none"
	}

	commands := []command{
		func(id string) (*domain.ServiceRequest, error) { return f.svc.MakeOffer(ctx, id, f.provider.ID, 100, 200) },
		func(id string) (*domain.ServiceRequest, error) { return f.svc.DeclineOffer(ctx, id, offerID(id), f.customer.ID) },
		func(id string) (*domain.ServiceRequest, error) { return f.svc.AcceptOffer(ctx, id, offerID(id), f.customer.ID) },
		func(id string) (*domain.ServiceRequest, error) { return f.svc.AcceptJob(ctx, id, f.provider.ID) },
		func(id string) (*domain.ServiceRequest, error) { return f.svc.ProviderDeclineJob(ctx, id, f.provider.ID) },
		func(id string) (*domain.ServiceRequest, error) {
			return f.svc.UpdateStatus(ctx, id, f.provider.ID, domain.BookingInProgress, 0)
		},
		func(id string) (*domain.ServiceRequest, error) {
			return f.svc.UpdateStatus(ctx, id, f.provider.ID, domain.BookingCompleted, 800)
		},
		func(id string) (*domain.ServiceRequest, error) { return f.svc.ProviderCancelJob(ctx, id, f.provider.ID) },
		func(id string) (*domain.ServiceRequest, error) { return f.svc.CancelBooking(ctx, id, f.customer.ID) },
	}

	// deterministic pseudo-random walks over the command set
	seed := uint32(7)
	next := func(n int) int {
		seed = seed*1664525 + 1013904223
		return int(seed>>16) % n
	}

	for walk := 0; walk < 12; walk++ {
		b := f.create(t, "")
		status := b.Status

		for step := 0; step < 15 && !status.Terminal(); step++ {
			got, err := commands[next(len(commands))](b.ID)
			if err != nil {
				after, gerr := f.store.Bookings.GetByID(ctx, b.ID)
				require.NoError(t, gerr)
				assert.Equal(t, status, after.Status, "rejected command changed state")
				continue
			}
			if got.Status != status {
				assert.True(t, domain.CanTransition(status, got.Status), "%s -> %s", status, got.Status)
			}
			status = got.Status
		}
	}
}

func offerBy(t *testing.T, b *domain.ServiceRequest, providerID string) domain.ServiceOffer {
	t.Helper()
	for _, o := range b.Offers {
		if o.ProviderID == providerID {
			return o
		}
	}
	t.Fatalf("no offer from %s on booking %s", providerID, b.ID)
	return domain.ServiceOffer{}
}

func ids(list []domain.ServiceRequest) []string {
	out := make([]string, 0, len(list))
	for _, b := range list {
		out = append(out, b.ID)
	}
	return out
}
