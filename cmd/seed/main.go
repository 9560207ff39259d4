package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"homeservices/internal/config"
	"homeservices/internal/database"
	"homeservices/internal/domain"
	"homeservices/internal/modules/booking"
	"homeservices/internal/modules/catalog"
	"homeservices/internal/modules/notification"
	"homeservices/internal/modules/payment"
	"homeservices/internal/modules/withdrawal"
	"homeservices/internal/pkg/logger"
	"homeservices/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}
	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatal("logger:", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, zl)
	if err != nil {
		zl.Fatal("DB connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zl.Fatal("migrate failed", zap.Error(err))
	}

	// Cleanup old data (children first)
	zl.Info("cleaning old data")
	for _, table := range []string{"notifications", "booking_messages", "service_offers", "fee_requests", "withdrawals", "service_requests", "categories", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			zl.Fatal("cleanup failed", zap.String("table", table), zap.Error(err))
		}
	}

	ctx := context.Background()
	store := repository.NewStore(db)
	events := notification.NewDispatcher(store.Notifications, store.Users, nil, zl)

	if err := catalog.NewService(store.Categories, store.Users, zl).EnsureDefaults(ctx, cfg.DefaultCategories); err != nil {
		zl.Fatal("categories failed", zap.Error(err))
	}

	// ================== USERS ==================
	admin := mustUser(ctx, store, domain.User{Name: "Admin", Email: "admin@homeservices.local", Role: domain.RoleAdmin}, "admin123")
	alice := mustUser(ctx, store, domain.User{Name: "Alice", Email: "alice@example.com", Phone: "+1 555 0101", Role: domain.RoleCustomer}, "client123")
	carol := mustUser(ctx, store, domain.User{Name: "Carol", Email: "carol@example.com", Phone: "+1 555 0102", Role: domain.RoleCustomer}, "client123")

	providers := []*domain.User{}
	for i, p := range []struct{ name, category string }{
		{"Bob", "Plumbing"},
		{"Dan", "Cleaning"},
		{"Eve", "Electrical"},
	} {
		providers = append(providers, mustUser(ctx, store, domain.User{
			Name:          p.name,
			Email:         fmt.Sprintf("%s@pro.example.com", p.name),
			Role:          domain.RoleProvider,
			Category:      p.category,
			HourlyRate:    int64(3000 + i*500),
			AvailableFrom: "08:00",
			AvailableTo:   "18:00",
		}, "provider123"))
	}
	bob, dan, eve := providers[0], providers[1], providers[2]

	bookings := booking.NewService(store, events, zl)
	payments := payment.NewService(store, events, cfg.PlatformCommission, zl)
	withdrawals := withdrawal.NewService(store, events, cfg.PlatformCommission, zl)

	// ================== BOOKINGS ==================
	// Pool request: offer, accept, complete, cash payment (raises a fee).
	leak, err := bookings.CreateBooking(ctx, booking.CreateBookingRequest{
		CustomerID: alice.ID, Category: "Plumbing",
		Description: "Kitchen sink is leaking under the cabinet", Address: "12 Elm Street",
	})
	check(zl, "create pool request", err)
	_, err = bookings.MakeOffer(ctx, leak.ID, bob.ID, 4000, 6000)
	check(zl, "make offer", err)
	offers, err := store.Offers.ListPending(ctx, leak.ID)
	check(zl, "list offers", err)
	_, err = bookings.AcceptOffer(ctx, leak.ID, offers[0].ID, alice.ID)
	check(zl, "accept offer", err)
	_, err = bookings.UpdateStatus(ctx, leak.ID, bob.ID, domain.BookingInProgress, 0)
	check(zl, "start job", err)
	_, err = bookings.UpdateStatus(ctx, leak.ID, bob.ID, domain.BookingCompleted, 5000)
	check(zl, "complete job", err)
	_, err = payments.ProcessPayment(ctx, leak.ID, alice.ID, domain.PaymentCash)
	check(zl, "cash payment", err)
	_, err = bookings.RateService(ctx, leak.ID, alice.ID, 5, "Quick and tidy")
	check(zl, "rate", err)

	// Open request with a pending offer.
	clean, err := bookings.CreateBooking(ctx, booking.CreateBookingRequest{
		CustomerID: carol.ID, Category: "Cleaning",
		Description: "Deep clean of a two bedroom apartment", Address: "7 Oak Avenue",
	})
	check(zl, "create cleaning request", err)
	_, err = bookings.MakeOffer(ctx, clean.ID, dan.ID, 8000, 12000)
	check(zl, "make cleaning offer", err)
	_, err = bookings.SendMessage(ctx, clean.ID, carol.ID, "Can you bring your own supplies?")
	check(zl, "message", err)

	// Direct request paid by card, then a withdrawal.
	wiring, err := bookings.CreateBooking(ctx, booking.CreateBookingRequest{
		CustomerID: carol.ID, ProviderID: eve.ID, Category: "Electrical",
		Description: "Replace two ceiling light fixtures", Address: "7 Oak Avenue",
	})
	check(zl, "create direct request", err)
	_, err = bookings.AcceptJob(ctx, wiring.ID, eve.ID)
	check(zl, "accept direct job", err)
	_, err = bookings.UpdateStatus(ctx, wiring.ID, eve.ID, domain.BookingInProgress, 0)
	check(zl, "start direct job", err)
	_, err = bookings.UpdateStatus(ctx, wiring.ID, eve.ID, domain.BookingCompleted, 9000)
	check(zl, "complete direct job", err)
	_, err = payments.ProcessPayment(ctx, wiring.ID, carol.ID, domain.PaymentCard)
	check(zl, "card payment", err)
	_, err = withdrawals.RequestWithdrawal(ctx, eve.ID, withdrawal.CreateRequest{Amount: 5000, Method: "bank transfer"})
	check(zl, "withdrawal", err)

	zl.Info("seed completed",
		zap.String("admin", admin.Email+" / admin123"),
		zap.String("customers", "alice@example.com, carol@example.com / client123"),
		zap.String("providers", "bob@pro.example.com, dan@pro.example.com, eve@pro.example.com / provider123"),
	)
}

func mustUser(ctx context.Context, store *repository.Store, u domain.User, password string) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt:", err)
	}
	u.PasswordHash = string(hash)
	u.IsVerified = true
	if err := store.Users.Create(ctx, &u); err != nil {
		log.Fatalf("create user %s: %v", u.Email, err)
	}
	return &u
}

func check(zl *zap.Logger, step string, err error) {
	if err != nil {
		zl.Error("seed step failed", zap.String("step", step), zap.Error(err))
		os.Exit(1)
	}
}
