package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"campuspool/internal/config"
	"campuspool/internal/models"
	"campuspool/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fixture struct {
	users      *repository.UserRepository
	rideSvc    *RideService
	requestSvc *RequestService
	ratingSvc  *RatingService
	chatSvc    *ChatService
	safetySvc  *SafetyService
	adminSvc   *AdminService
	userSvc    *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	users := repository.NewUserRepository(db)
	rides := repository.NewRideRepository(db)
	requests := repository.NewRideRequestRepository(db)
	ratings := repository.NewRatingRepository(db)
	chats := repository.NewChatRepository(db)
	safety := repository.NewSafetyRepository(db)
	moderation := repository.NewModerationRepository(db)

	trustCfg := testTrustConfig()
	rideCfg := config.RideConfig{
		UrgentHorizon:     2 * time.Hour,
		MaxRecurrenceDays: 30,
	}

	trust := NewTrustCalculator(trustCfg)
	userSvc := NewUserService(users, rides, requests, ratings, trust, trustCfg.StreakLookback)
	rideSvc := NewRideService(rides, requests, users, ratings, moderation, trust, rideCfg)
	requestSvc := NewRequestService(requests, rides, users, safety, rideSvc, rideCfg)

	return &fixture{
		users:      users,
		rideSvc:    rideSvc,
		requestSvc: requestSvc,
		ratingSvc:  NewRatingService(ratings, requestSvc),
		chatSvc:    NewChatService(chats, requestSvc),
		safetySvc:  NewSafetyService(safety, requestSvc),
		adminSvc:   NewAdminService(users, rides, requests, safety, moderation, userSvc),
		userSvc:    userSvc,
	}
}

func (f *fixture) createUser(t *testing.T, role models.UserRole, verified bool) *models.User {
	t.Helper()

	status := models.VerificationUnverified
	if verified {
		status = models.VerificationVerified
	}
	user := &models.User{
		ID:                 uuid.New(),
		Email:              fmt.Sprintf("%s@rvce.edu.in", uuid.New().String()[:8]),
		HashedPassword:     "x",
		Name:               "Test " + string(role),
		Role:               role,
		IsAdmin:            role == models.RoleAdmin,
		VerificationStatus: status,
		IsActive:           true,
	}
	if err := f.users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (f *fixture) createRide(t *testing.T, driver *models.User, seats int) *models.Ride {
	t.Helper()

	departure := time.Now().UTC().Add(26 * time.Hour)
	ride, _, err := f.rideSvc.CreateRide(context.Background(), driver, CreateRideInput{
		Source:        "Campus Main Gate",
		Destination:   "Indiranagar",
		Date:          departure.Format(models.RideDateLayout),
		Time:          departure.Format(models.RideTimeLayout),
		TotalSeats:    seats,
		EstimatedCost: 120,
	})
	if err != nil {
		t.Fatalf("create ride: %v", err)
	}
	return ride
}

func TestSeatAccounting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	driver := f.createUser(t, models.RoleDriver, true)
	ride := f.createRide(t, driver, 2)

	riders := make([]*models.User, 3)
	reqs := make([]*models.RideRequest, 3)
	for i := range riders {
		riders[i] = f.createUser(t, models.RoleRider, false)
		req, err := f.requestSvc.RequestRide(ctx, riders[i], ride.ID, false)
		if err != nil {
			t.Fatalf("request ride: %v", err)
		}
		reqs[i] = req
	}

	for i := 0; i < 2; i++ {
		accepted, err := f.requestSvc.RespondToRequest(ctx, driver, reqs[i].ID, true)
		if err != nil {
			t.Fatalf("accept request %d: %v", i, err)
		}
		if accepted.Status != models.RequestStatusAccepted {
			t.Fatalf("expected accepted, got %s", accepted.Status)
		}
		if accepted.RidePIN == nil || len(*accepted.RidePIN) != 4 {
			t.Fatalf("expected 4-digit PIN, got %v", accepted.RidePIN)
		}
	}

	// Third accept must lose the seat check.
	if _, err := f.requestSvc.RespondToRequest(ctx, driver, reqs[2].ID, true); !errors.Is(err, ErrNoSeatsAvailable) {
		t.Fatalf("expected ErrNoSeatsAvailable, got %v", err)
	}

	view, err := f.rideSvc.GetRide(ctx, ride.ID)
	if err != nil {
		t.Fatalf("get ride: %v", err)
	}
	if view.SeatsAvailable != 0 {
		t.Fatalf("expected 0 seats available, got %d", view.SeatsAvailable)
	}

	// Rejection still works on the overflow request.
	rejected, err := f.requestSvc.RespondToRequest(ctx, driver, reqs[2].ID, false)
	if err != nil {
		t.Fatalf("reject request: %v", err)
	}
	if rejected.Status != models.RequestStatusRejected {
		t.Fatalf("expected rejected, got %s", rejected.Status)
	}

	// A full ride rejects new requests outright.
	late := f.createUser(t, models.RoleRider, false)
	if _, err := f.requestSvc.RequestRide(ctx, late, ride.ID, false); !errors.Is(err, ErrNoSeatsAvailable) {
		t.Fatalf("expected ErrNoSeatsAvailable for late rider, got %v", err)
	}
}

func TestConcurrentAcceptsSingleSeat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	driver := f.createUser(t, models.RoleDriver, true)
	ride := f.createRide(t, driver, 1)

	const contenders = 4
	reqs := make([]*models.RideRequest, contenders)
	for i := range reqs {
		rider := f.createUser(t, models.RoleRider, false)
		req, err := f.requestSvc.RequestRide(ctx, rider, ride.ID, false)
		if err != nil {
			t.Fatalf("request ride: %v", err)
		}
		reqs[i] = req
	}

	// All accepts race for the one seat at once.
	var wg sync.WaitGroup
	results := make(chan error, contenders)
	for _, req := range reqs {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := f.requestSvc.RespondToRequest(ctx, driver, id, true)
			results <- err
		}(req.ID)
	}
	wg.Wait()
	close(results)

	var wins, seatLosses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrNoSeatsAvailable):
			seatLosses++
		default:
			t.Fatalf("unexpected accept error: %v", err)
		}
	}
	if wins != 1 || seatLosses != contenders-1 {
		t.Fatalf("expected exactly one winner, got %d wins and %d seat losses", wins, seatLosses)
	}

	views, err := f.requestSvc.RideRequests(ctx, driver, ride.ID)
	if err != nil {
		t.Fatalf("ride requests: %v", err)
	}
	var accepted int
	for _, v := range views {
		if v.Status == models.RequestStatusAccepted {
			accepted++
		}
	}
	if accepted != 1 {
		t.Fatalf("expected 1 accepted request in storage, got %d", accepted)
	}
	view, err := f.rideSvc.GetRide(ctx, ride.ID)
	if err != nil {
		t.Fatalf("get ride: %v", err)
	}
	if view.SeatsAvailable != 0 {
		t.Fatalf("expected 0 seats available, got %d", view.SeatsAvailable)
	}
}

func TestPINStartAndLastFinisherCompletesRide(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	driver := f.createUser(t, models.RoleDriver, true)
	ride := f.createRide(t, driver, 2)
	riderA := f.createUser(t, models.RoleRider, false)
	riderB := f.createUser(t, models.RoleRider, false)

	reqA, _ := f.requestSvc.RequestRide(ctx, riderA, ride.ID, false)
	reqB, _ := f.requestSvc.RequestRide(ctx, riderB, ride.ID, false)

	accA, err := f.requestSvc.RespondToRequest(ctx, driver, reqA.ID, true)
	if err != nil {
		t.Fatalf("accept A: %v", err)
	}
	accB, err := f.requestSvc.RespondToRequest(ctx, driver, reqB.ID, true)
	if err != nil {
		t.Fatalf("accept B: %v", err)
	}

	// PINs are minted in 1000-9999, so 0000 never collides.
	if _, err := f.requestSvc.StartRide(ctx, driver, accA.ID, "0000"); !errors.Is(err, ErrInvalidPIN) {
		t.Fatalf("expected ErrInvalidPIN, got %v", err)
	}
	if _, err := f.requestSvc.StartRide(ctx, riderA, accA.ID, *accA.RidePIN); !errors.Is(err, ErrNotRideOwner) {
		t.Fatalf("expected ErrNotRideOwner for rider-started ride, got %v", err)
	}

	started, err := f.requestSvc.StartRide(ctx, driver, accA.ID, *accA.RidePIN)
	if err != nil {
		t.Fatalf("start A: %v", err)
	}
	if started.Status != models.RequestStatusOngoing || started.RideStartedAt == nil {
		t.Fatalf("expected ongoing with start time, got %+v", started)
	}
	if _, err := f.requestSvc.StartRide(ctx, driver, accB.ID, *accB.RidePIN); err != nil {
		t.Fatalf("start B: %v", err)
	}

	// First finisher completes their leg only.
	doneA, err := f.requestSvc.MarkReachedSafely(ctx, riderA, accA.ID)
	if err != nil {
		t.Fatalf("reached safely A: %v", err)
	}
	if doneA.Status != models.RequestStatusCompleted || doneA.ReachedSafelyAt == nil {
		t.Fatalf("expected completed leg, got %+v", doneA)
	}
	midView, err := f.rideSvc.GetRide(ctx, ride.ID)
	if err != nil {
		t.Fatalf("get ride: %v", err)
	}
	if midView.Status != models.RideStatusActive {
		t.Fatalf("expected ride still active, got %s", midView.Status)
	}

	// Last finisher completes the ride.
	if _, err := f.requestSvc.MarkReachedSafely(ctx, riderB, accB.ID); err != nil {
		t.Fatalf("reached safely B: %v", err)
	}
	endView, err := f.rideSvc.GetRide(ctx, ride.ID)
	if err != nil {
		t.Fatalf("get ride: %v", err)
	}
	if endView.Status != models.RideStatusCompleted {
		t.Fatalf("expected ride completed, got %s", endView.Status)
	}
	if endView.SeatsAvailable != 0 {
		t.Fatalf("completed legs should still hold seats, got %d available", endView.SeatsAvailable)
	}

	// Terminal legs stay terminal.
	if _, err := f.requestSvc.MarkReachedSafely(ctx, riderA, accA.ID); !errors.Is(err, ErrRequestNotOngoing) {
		t.Fatalf("expected ErrRequestNotOngoing, got %v", err)
	}
}

func TestCancelRideCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	driver := f.createUser(t, models.RoleDriver, true)
	ride := f.createRide(t, driver, 3)
	riderA := f.createUser(t, models.RoleRider, false)
	riderB := f.createUser(t, models.RoleRider, false)

	if _, err := f.requestSvc.RequestRide(ctx, riderA, ride.ID, false); err != nil {
		t.Fatalf("request A: %v", err)
	}
	reqB, err := f.requestSvc.RequestRide(ctx, riderB, ride.ID, false)
	if err != nil {
		t.Fatalf("request B: %v", err)
	}
	if _, err := f.requestSvc.RespondToRequest(ctx, driver, reqB.ID, true); err != nil {
		t.Fatalf("accept B: %v", err)
	}

	stranger := f.createUser(t, models.RoleDriver, true)
	if err := f.rideSvc.CancelRide(ctx, stranger, ride.ID); !errors.Is(err, ErrNotRideOwner) {
		t.Fatalf("expected ErrNotRideOwner, got %v", err)
	}

	if err := f.rideSvc.CancelRide(ctx, driver, ride.ID); err != nil {
		t.Fatalf("cancel ride: %v", err)
	}

	views, err := f.requestSvc.MyRequests(ctx, riderA.ID)
	if err != nil {
		t.Fatalf("my requests: %v", err)
	}
	if len(views) != 1 || views[0].Status != models.RequestStatusCancelled {
		t.Fatalf("expected pending request cancelled, got %+v", views)
	}
	views, _ = f.requestSvc.MyRequests(ctx, riderB.ID)
	if views[0].Status != models.RequestStatusCancelled {
		t.Fatalf("expected accepted request cancelled, got %s", views[0].Status)
	}

	if err := f.rideSvc.CancelRide(ctx, driver, ride.ID); !errors.Is(err, ErrRideNotEditable) {
		t.Fatalf("expected ErrRideNotEditable on second cancel, got %v", err)
	}
}

func TestRequestGates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	driver := f.createUser(t, models.RoleDriver, true)
	ride := f.createRide(t, driver, 2)
	rider := f.createUser(t, models.RoleRider, false)

	if _, err := f.requestSvc.RequestRide(ctx, driver, ride.ID, false); !errors.Is(err, ErrRiderOnly) {
		t.Fatalf("expected ErrRiderOnly for driver, got %v", err)
	}

	if _, err := f.requestSvc.RequestRide(ctx, rider, ride.ID, false); err != nil {
		t.Fatalf("request ride: %v", err)
	}
	if _, err := f.requestSvc.RequestRide(ctx, rider, ride.ID, false); !errors.Is(err, ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}

	unverified := f.createUser(t, models.RoleDriver, false)
	if _, _, err := f.rideSvc.CreateRide(ctx, unverified, CreateRideInput{
		Source: "A", Destination: "B", Date: "2026-05-01", Time: "10:00", TotalSeats: 2,
	}); !errors.Is(err, ErrUnverifiedDriver) {
		t.Fatalf("expected ErrUnverifiedDriver, got %v", err)
	}
	if _, _, err := f.rideSvc.CreateRide(ctx, rider, CreateRideInput{
		Source: "A", Destination: "B", Date: "2026-05-01", Time: "10:00", TotalSeats: 2,
	}); !errors.Is(err, ErrDriverOnly) {
		t.Fatalf("expected ErrDriverOnly, got %v", err)
	}
}

func TestUrgentHorizon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	driver := f.createUser(t, models.RoleDriver, true)
	rider := f.createUser(t, models.RoleRider, false)

	// Departure beyond the urgent window.
	farRide := f.createRide(t, driver, 2)
	if _, err := f.requestSvc.RequestRide(ctx, rider, farRide.ID, true); !errors.Is(err, ErrUrgentOutsideHorizon) {
		t.Fatalf("expected ErrUrgentOutsideHorizon, got %v", err)
	}

	// Departure inside the window.
	soon := time.Now().UTC().Add(time.Hour)
	soonRide, _, err := f.rideSvc.CreateRide(ctx, driver, CreateRideInput{
		Source:      "Campus",
		Destination: "Airport",
		Date:        soon.Format(models.RideDateLayout),
		Time:        soon.Format(models.RideTimeLayout),
		TotalSeats:  2,
	})
	if err != nil {
		t.Fatalf("create ride: %v", err)
	}
	req, err := f.requestSvc.RequestRide(ctx, rider, soonRide.ID, true)
	if err != nil {
		t.Fatalf("urgent request inside horizon: %v", err)
	}
	if !req.IsUrgent {
		t.Fatalf("expected urgent flag set")
	}
}

func TestRecurrenceExpansion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	driver := f.createUser(t, models.RoleDriver, true)
	pattern := "weekdays"

	// 2026-01-05 is a Monday. A 14-day weekday expansion adds Tue-Fri,
	// Mon-Fri and the following Monday: 10 instances plus the base ride.
	base, instances, err := f.rideSvc.CreateRide(ctx, driver, CreateRideInput{
		Source:            "Campus",
		Destination:       "Indiranagar",
		Date:              "2026-01-05",
		Time:              "09:00",
		TotalSeats:        3,
		IsRecurring:       true,
		RecurrencePattern: &pattern,
		RecurrenceDays:    14,
	})
	if err != nil {
		t.Fatalf("create recurring ride: %v", err)
	}
	if instances != 11 {
		t.Fatalf("expected 11 instances, got %d", instances)
	}

	rides, err := f.rideSvc.MyRides(ctx, driver.ID)
	if err != nil {
		t.Fatalf("my rides: %v", err)
	}
	if len(rides) != 11 {
		t.Fatalf("expected 11 stored rides, got %d", len(rides))
	}
	for _, rv := range rides {
		day, err := time.Parse(models.RideDateLayout, rv.Date)
		if err != nil {
			t.Fatalf("parse date %q: %v", rv.Date, err)
		}
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			t.Fatalf("weekday pattern produced weekend ride on %s", rv.Date)
		}
		if rv.ID != base.ID && (rv.ParentRideID == nil || *rv.ParentRideID != base.ID) {
			t.Fatalf("instance %s missing parent link", rv.Date)
		}
	}

	// Missing horizon and unknown patterns are rejected.
	bogus := "every_other_day"
	if _, _, err := f.rideSvc.CreateRide(ctx, driver, CreateRideInput{
		Source: "A", Destination: "B", Date: "2026-02-02", Time: "09:00", TotalSeats: 2,
		IsRecurring: true, RecurrencePattern: &bogus, RecurrenceDays: 7,
	}); !errors.Is(err, ErrInvalidRecurrence) {
		t.Fatalf("expected ErrInvalidRecurrence, got %v", err)
	}
	if _, _, err := f.rideSvc.CreateRide(ctx, driver, CreateRideInput{
		Source: "A", Destination: "B", Date: "2026-02-02", Time: "09:00", TotalSeats: 2,
		IsRecurring: true, RecurrencePattern: &pattern,
	}); !errors.Is(err, ErrRecurrenceHorizon) {
		t.Fatalf("expected ErrRecurrenceHorizon, got %v", err)
	}
}

func completeLeg(t *testing.T, f *fixture, driver, rider *models.User, ride *models.Ride) *models.RideRequest {
	t.Helper()
	ctx := context.Background()

	req, err := f.requestSvc.RequestRide(ctx, rider, ride.ID, false)
	if err != nil {
		t.Fatalf("request ride: %v", err)
	}
	acc, err := f.requestSvc.RespondToRequest(ctx, driver, req.ID, true)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := f.requestSvc.StartRide(ctx, driver, acc.ID, *acc.RidePIN); err != nil {
		t.Fatalf("start: %v", err)
	}
	done, err := f.requestSvc.MarkReachedSafely(ctx, rider, acc.ID)
	if err != nil {
		t.Fatalf("reached safely: %v", err)
	}
	return done
}

func TestRatingFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	driver := f.createUser(t, models.RoleDriver, true)
	rider := f.createUser(t, models.RoleRider, false)
	ride := f.createRide(t, driver, 2)
	done := completeLeg(t, f, driver, rider, ride)

	canRate, err := f.ratingSvc.CanRate(ctx, rider, done.ID)
	if err != nil || !canRate {
		t.Fatalf("expected rider can rate, got %v %v", canRate, err)
	}

	rating, err := f.ratingSvc.Submit(ctx, rider, done.ID, 5, nil)
	if err != nil {
		t.Fatalf("submit rating: %v", err)
	}
	if rating.RatedUserID != driver.ID {
		t.Fatalf("expected driver rated, got %s", rating.RatedUserID)
	}

	if _, err := f.ratingSvc.Submit(ctx, rider, done.ID, 4, nil); !errors.Is(err, ErrAlreadyRated) {
		t.Fatalf("expected ErrAlreadyRated, got %v", err)
	}
	canRate, _ = f.ratingSvc.CanRate(ctx, rider, done.ID)
	if canRate {
		t.Fatalf("expected can_rate false after rating")
	}

	// The driver rates back, targeting the rider.
	back, err := f.ratingSvc.Submit(ctx, driver, done.ID, 4, nil)
	if err != nil {
		t.Fatalf("driver rating: %v", err)
	}
	if back.RatedUserID != rider.ID {
		t.Fatalf("expected rider rated, got %s", back.RatedUserID)
	}

	outsider := f.createUser(t, models.RoleRider, false)
	if _, err := f.ratingSvc.Submit(ctx, outsider, done.ID, 3, nil); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	if _, err := f.ratingSvc.Submit(ctx, rider, done.ID, 9, nil); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
}

func TestChatGating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	driver := f.createUser(t, models.RoleDriver, true)
	rider := f.createUser(t, models.RoleRider, false)
	ride := f.createRide(t, driver, 2)

	req, _ := f.requestSvc.RequestRide(ctx, rider, ride.ID, false)
	if _, err := f.chatSvc.SendMessage(ctx, rider, req.ID, "hi"); !errors.Is(err, ErrChatUnavailable) {
		t.Fatalf("expected ErrChatUnavailable while pending, got %v", err)
	}

	acc, err := f.requestSvc.RespondToRequest(ctx, driver, req.ID, true)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := f.chatSvc.SendMessage(ctx, rider, acc.ID, "where do we meet?"); err != nil {
		t.Fatalf("send message: %v", err)
	}
	if _, err := f.chatSvc.SendMessage(ctx, driver, acc.ID, "main gate"); err != nil {
		t.Fatalf("driver reply: %v", err)
	}

	messages, err := f.chatSvc.Messages(ctx, rider, acc.ID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}

	outsider := f.createUser(t, models.RoleRider, false)
	if _, err := f.chatSvc.Messages(ctx, outsider, acc.ID); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestSOSAndAdminHandling(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	driver := f.createUser(t, models.RoleDriver, true)
	rider := f.createUser(t, models.RoleRider, false)
	admin := f.createUser(t, models.RoleAdmin, true)
	ride := f.createRide(t, driver, 2)

	req, _ := f.requestSvc.RequestRide(ctx, rider, ride.ID, false)
	if _, err := f.safetySvc.TriggerSOS(ctx, rider, req.ID, SOSInput{}); !errors.Is(err, ErrRequestNotOngoing) {
		t.Fatalf("expected ErrRequestNotOngoing while pending, got %v", err)
	}

	acc, err := f.requestSvc.RespondToRequest(ctx, driver, req.ID, true)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := f.requestSvc.StartRide(ctx, driver, acc.ID, *acc.RidePIN); err != nil {
		t.Fatalf("start: %v", err)
	}

	text := "near the flyover"
	event, err := f.safetySvc.TriggerSOS(ctx, rider, acc.ID, SOSInput{LocationText: &text})
	if err != nil {
		t.Fatalf("trigger sos: %v", err)
	}
	if event.Status != models.SOSStatusActive {
		t.Fatalf("expected active sos, got %s", event.Status)
	}

	live, err := f.requestSvc.LiveView(ctx, driver, acc.ID)
	if err != nil {
		t.Fatalf("live view: %v", err)
	}
	if !live.HasActiveSOS {
		t.Fatalf("expected live view to flag active sos")
	}

	if _, err := f.adminSvc.HandleSOS(ctx, admin, event.ID, "escalate", nil); !errors.Is(err, ErrInvalidAdminAction) {
		t.Fatalf("expected ErrInvalidAdminAction, got %v", err)
	}
	resolved, err := f.adminSvc.HandleSOS(ctx, admin, event.ID, "resolve", nil)
	if err != nil {
		t.Fatalf("resolve sos: %v", err)
	}
	if resolved.Status != models.SOSStatusResolved || resolved.ResolvedBy == nil {
		t.Fatalf("expected resolved sos, got %+v", resolved)
	}

	logs, err := f.adminSvc.AuditLogs(ctx)
	if err != nil {
		t.Fatalf("audit logs: %v", err)
	}
	if len(logs) == 0 || logs[0].ActionType != "handle_sos" {
		t.Fatalf("expected handle_sos audit entry, got %+v", logs)
	}
}

func TestReportModeration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.createUser(t, models.RoleAdmin, true)
	reporter := f.createUser(t, models.RoleRider, false)
	target := f.createUser(t, models.RoleDriver, true)

	report, err := f.adminSvc.FileReport(ctx, reporter, FileReportInput{
		ReportedUserID: &target.ID,
		Category:       models.ReportCategoryBehavior,
		Description:    "did not show up at the agreed pickup point",
	})
	if err != nil {
		t.Fatalf("file report: %v", err)
	}

	handled, err := f.adminSvc.HandleReport(ctx, admin, report.ID, ReportActionWarn, nil)
	if err != nil {
		t.Fatalf("handle report: %v", err)
	}
	if handled.Status != models.ReportStatusHandled {
		t.Fatalf("expected handled report, got %s", handled.Status)
	}

	updated, err := f.users.GetByID(ctx, target.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if updated.WarningCount != 1 {
		t.Fatalf("expected warning count 1, got %d", updated.WarningCount)
	}

	if _, err := f.adminSvc.HandleReport(ctx, admin, report.ID, ReportActionDismiss, nil); !errors.Is(err, ErrReportAlreadyHandled) {
		t.Fatalf("expected ErrReportAlreadyHandled, got %v", err)
	}
}

func TestUserStatsAfterCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	driver := f.createUser(t, models.RoleDriver, true)
	rider := f.createUser(t, models.RoleRider, false)
	ride := f.createRide(t, driver, 1)
	completeLeg(t, f, driver, rider, ride)

	riderStats, err := f.userSvc.Stats(ctx, rider)
	if err != nil {
		t.Fatalf("rider stats: %v", err)
	}
	if riderStats.RidesTaken != 1 || riderStats.RidesOffered != 0 {
		t.Fatalf("expected 1 ride taken, got %+v", riderStats)
	}

	driverStats, err := f.userSvc.Stats(ctx, driver)
	if err != nil {
		t.Fatalf("driver stats: %v", err)
	}
	if driverStats.RidesOffered != 1 {
		t.Fatalf("expected 1 ride offered, got %+v", driverStats)
	}
	if driverStats.Savings.TotalDistanceKm != 8 {
		t.Fatalf("expected 8km saved distance, got %v", driverStats.Savings.TotalDistanceKm)
	}

	view, err := f.userSvc.View(ctx, driver)
	if err != nil {
		t.Fatalf("driver view: %v", err)
	}
	if view.RideCount != 1 || view.TrustLevel.Level != TrustLevelNew {
		t.Fatalf("expected new-user trust at 1 ride, got %+v", view.TrustLevel)
	}
}
