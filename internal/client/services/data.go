// Package services contains application services for the admin client.
// This file defines the data service behind the dashboard, analytics,
// waitlist, user and admin views.
package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/client"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/models"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/session"
	"github.com/dmitrijs2005/waitlistadmin/internal/logging"
)

// DataService defines the admin data operations for the CLI.
//
// Every failure is reported through the Notifier and returned unchanged.
// Mutations also report success.
type DataService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	Waitlist(ctx context.Context) ([]models.WaitlistUser, error)
	AddToWaitlist(ctx context.Context, u models.NewWaitlistUser) error
	Tracking(ctx context.Context) (*models.TrackingData, error)
	Distribution(ctx context.Context) (*models.UserDistribution, error)
	Users(ctx context.Context) ([]models.User, error)
	User(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, u models.NewUser) (*models.User, error)
	SetUserVerification(ctx context.Context, id int64, status string) error
	Admins(ctx context.Context) ([]models.Profile, error)
	CreateAdmin(ctx context.Context, a models.NewAdmin) error
}

// Dashboard is the summary shown on the landing view.
type Dashboard struct {
	WaitlistCount  int
	LatestSignups  []models.WaitlistUser
	Totals         models.TrackingTotals
	TopButton      *models.NameValue
	TopTool        *models.NameValue
	TrackingFailed bool
}

const latestSignups = 5

type dataService struct {
	api      client.DataAPI
	notifier session.Notifier
	logger   logging.Logger
}

// NewDataService constructs a DataService bound to the given API client.
func NewDataService(api client.DataAPI, notifier session.Notifier, logger logging.Logger) DataService {
	if notifier == nil {
		notifier = session.NopNotifier{}
	}
	return &dataService{api: api, notifier: notifier, logger: logger.With("module", "data_service")}
}

func (s *dataService) report(ctx context.Context, op string, err error) error {
	if err != nil {
		s.logger.Warn(ctx, op+" failed", "error", err)
		s.notifier.Failure(ctx, session.Describe(err))
	}
	return err
}

// Dashboard loads the waitlist and the tracking report in parallel. The
// tracking report is optional: its failure is reported but the dashboard
// is still built from the waitlist.
func (s *dataService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var (
		wg          sync.WaitGroup
		waitlist    []models.WaitlistUser
		tracking    *models.TrackingData
		waitErr     error
		trackingErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		waitlist, waitErr = s.api.GetWaitlist(ctx)
	}()
	go func() {
		defer wg.Done()
		tracking, trackingErr = s.api.GetTrackingData(ctx)
	}()
	wg.Wait()

	if waitErr != nil {
		return nil, s.report(ctx, "load waitlist", waitErr)
	}

	d := &Dashboard{WaitlistCount: len(waitlist)}
	n := min(latestSignups, len(waitlist))
	d.LatestSignups = waitlist[len(waitlist)-n:]

	if trackingErr != nil {
		_ = s.report(ctx, "load tracking data", trackingErr)
		d.TrackingFailed = true
		return d, nil
	}

	d.Totals = tracking.Totals()
	if top, ok := models.Top(tracking.ButtonClicksByButtonName); ok {
		d.TopButton = &top
	}
	if top, ok := models.Top(tracking.ToolCallsByToolName); ok {
		d.TopTool = &top
	}
	return d, nil
}

func (s *dataService) Waitlist(ctx context.Context) ([]models.WaitlistUser, error) {
	list, err := s.api.GetWaitlist(ctx)
	return list, s.report(ctx, "load waitlist", err)
}

func (s *dataService) AddToWaitlist(ctx context.Context, u models.NewWaitlistUser) error {
	if err := s.report(ctx, "add to waitlist", s.api.AddToWaitlist(ctx, u)); err != nil {
		return err
	}
	s.notifier.Success(ctx, "User added to waitlist successfully")
	return nil
}

func (s *dataService) Tracking(ctx context.Context) (*models.TrackingData, error) {
	td, err := s.api.GetTrackingData(ctx)
	return td, s.report(ctx, "load tracking data", err)
}

func (s *dataService) Distribution(ctx context.Context) (*models.UserDistribution, error) {
	d, err := s.api.GetUserDistribution(ctx)
	return d, s.report(ctx, "load user distribution", err)
}

func (s *dataService) Users(ctx context.Context) ([]models.User, error) {
	users, err := s.api.FetchUsers(ctx)
	return users, s.report(ctx, "load users", err)
}

func (s *dataService) User(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.api.FetchUser(ctx, id)
	return u, s.report(ctx, "load user", err)
}

func (s *dataService) CreateUser(ctx context.Context, u models.NewUser) (*models.User, error) {
	created, err := s.api.CreateUser(ctx, u)
	if err := s.report(ctx, "create user", err); err != nil {
		return nil, err
	}
	s.notifier.Success(ctx, "User created successfully")
	return created, nil
}

func (s *dataService) SetUserVerification(ctx context.Context, id int64, status string) error {
	err := s.api.UpdateUserVerification(ctx, models.VerificationUpdate{ID: id, VerificationStatus: status})
	if err := s.report(ctx, "update user verification", err); err != nil {
		return err
	}
	s.notifier.Success(ctx, "User verification status updated successfully")
	return nil
}

func (s *dataService) Admins(ctx context.Context) ([]models.Profile, error) {
	admins, err := s.api.FetchAdmins(ctx)
	return admins, s.report(ctx, "load admins", err)
}

func (s *dataService) CreateAdmin(ctx context.Context, a models.NewAdmin) error {
	if err := s.report(ctx, "create admin", s.api.CreateAdmin(ctx, a)); err != nil {
		return err
	}
	s.notifier.Success(ctx, "Admin created successfully")
	return nil
}
