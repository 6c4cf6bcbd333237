package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/client"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/models"
	"github.com/dmitrijs2005/waitlistadmin/internal/common"
	"github.com/dmitrijs2005/waitlistadmin/internal/logging"
)

// ---- fake data API ----

type fakeDataAPI struct {
	Waitlist    []models.WaitlistUser
	WaitlistErr error

	Tracking    *models.TrackingData
	TrackingErr error

	Distribution    *models.UserDistribution
	DistributionErr error

	Users    []models.User
	UsersErr error

	CreatedUser   *models.User
	CreateUserErr error

	VerificationErr error
	LastUpdate      models.VerificationUpdate

	Admins    []models.Profile
	AdminsErr error

	CreateAdminErr error
	AddErr         error
}

func (f *fakeDataAPI) GetWaitlist(context.Context) ([]models.WaitlistUser, error) {
	return f.Waitlist, f.WaitlistErr
}
func (f *fakeDataAPI) AddToWaitlist(context.Context, models.NewWaitlistUser) error { return f.AddErr }
func (f *fakeDataAPI) GetTrackingData(context.Context) (*models.TrackingData, error) {
	return f.Tracking, f.TrackingErr
}
func (f *fakeDataAPI) GetUserDistribution(context.Context) (*models.UserDistribution, error) {
	return f.Distribution, f.DistributionErr
}
func (f *fakeDataAPI) FetchUsers(context.Context) ([]models.User, error) { return f.Users, f.UsersErr }
func (f *fakeDataAPI) FetchUser(_ context.Context, id int64) (*models.User, error) {
	for _, u := range f.Users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, &client.StatusError{StatusCode: 404, Message: "User not found", Err: common.ErrUnexpectedStatus}
}
func (f *fakeDataAPI) CreateUser(context.Context, models.NewUser) (*models.User, error) {
	return f.CreatedUser, f.CreateUserErr
}
func (f *fakeDataAPI) UpdateUserVerification(_ context.Context, upd models.VerificationUpdate) error {
	f.LastUpdate = upd
	return f.VerificationErr
}
func (f *fakeDataAPI) CreateAdmin(context.Context, models.NewAdmin) error { return f.CreateAdminErr }
func (f *fakeDataAPI) FetchAdmins(context.Context) ([]models.Profile, error) {
	return f.Admins, f.AdminsErr
}

type fakeNotifier struct {
	mu        sync.Mutex
	Successes []string
	Failures  []string
}

func (n *fakeNotifier) Success(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Successes = append(n.Successes, msg)
}

func (n *fakeNotifier) Failure(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Failures = append(n.Failures, msg)
}

func newService(api *fakeDataAPI) (DataService, *fakeNotifier) {
	n := &fakeNotifier{}
	return NewDataService(api, n, logging.Discard()), n
}

// ---- tests ----

func TestDashboard_Summary(t *testing.T) {
	api := &fakeDataAPI{
		Waitlist: make([]models.WaitlistUser, 7),
		Tracking: &models.TrackingData{
			ButtonClicksByDate:       []models.DateValue{{Date: "d1", TotalClicks: 3}},
			ButtonClicksByButtonName: []models.NameValue{{ButtonName: "join", TotalClicks: 3}},
			ToolCallsByToolName:      []models.NameValue{{ToolName: "swap", TotalCalls: 2}, {ToolName: "send", TotalCalls: 8}},
		},
	}
	for i := range api.Waitlist {
		api.Waitlist[i].ID = int64(i + 1)
	}
	svc, n := newService(api)

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, d.WaitlistCount)
	require.Len(t, d.LatestSignups, 5)
	assert.Equal(t, int64(3), d.LatestSignups[0].ID)
	assert.Equal(t, int64(3), d.Totals.ButtonClicks)
	require.NotNil(t, d.TopButton)
	assert.Equal(t, "join", d.TopButton.Label())
	require.NotNil(t, d.TopTool)
	assert.Equal(t, "send", d.TopTool.Label())
	assert.False(t, d.TrackingFailed)
	assert.Empty(t, n.Failures)
}

func TestDashboard_TrackingFailureIsNotFatal(t *testing.T) {
	api := &fakeDataAPI{Waitlist: []models.WaitlistUser{{ID: 1}}, TrackingErr: errors.New("tracking down")}
	svc, n := newService(api)

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.True(t, d.TrackingFailed)
	assert.Equal(t, 1, d.WaitlistCount)
	assert.Equal(t, []string{"tracking down"}, n.Failures)
}

func TestDashboard_WaitlistFailure(t *testing.T) {
	api := &fakeDataAPI{WaitlistErr: common.ErrSessionExpired, Tracking: &models.TrackingData{}}
	svc, n := newService(api)

	_, err := svc.Dashboard(context.Background())
	require.ErrorIs(t, err, common.ErrSessionExpired)
	assert.Equal(t, []string{"Session expired. Please log in again."}, n.Failures)
}

func TestMutations_ReportSuccess(t *testing.T) {
	api := &fakeDataAPI{CreatedUser: &models.User{ID: 3}}
	svc, n := newService(api)
	ctx := context.Background()

	require.NoError(t, svc.AddToWaitlist(ctx, models.NewWaitlistUser{EmailAddress: "w@x.com"}))
	u, err := svc.CreateUser(ctx, models.NewUser{Username: "bob"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)
	require.NoError(t, svc.SetUserVerification(ctx, 3, "verified"))
	require.NoError(t, svc.CreateAdmin(ctx, models.NewAdmin{Name: "Ops", Email: "ops@x.com"}))

	assert.Equal(t, models.VerificationUpdate{ID: 3, VerificationStatus: "verified"}, api.LastUpdate)
	assert.Equal(t, []string{
		"User added to waitlist successfully",
		"User created successfully",
		"User verification status updated successfully",
		"Admin created successfully",
	}, n.Successes)
	assert.Empty(t, n.Failures)
}

func TestFailures_AreReportedAndReturned(t *testing.T) {
	serr := &client.StatusError{StatusCode: 409, Message: "already exists", Err: common.ErrUnexpectedStatus}
	api := &fakeDataAPI{
		AddErr:          serr,
		CreateUserErr:   serr,
		VerificationErr: serr,
		CreateAdminErr:  serr,
		AdminsErr:       serr,
		UsersErr:        serr,
		DistributionErr: serr,
		TrackingErr:     serr,
		WaitlistErr:     serr,
	}
	svc, n := newService(api)
	ctx := context.Background()

	require.ErrorIs(t, svc.AddToWaitlist(ctx, models.NewWaitlistUser{}), common.ErrUnexpectedStatus)
	_, err := svc.CreateUser(ctx, models.NewUser{})
	require.Error(t, err)
	require.Error(t, svc.SetUserVerification(ctx, 1, "verified"))
	require.Error(t, svc.CreateAdmin(ctx, models.NewAdmin{}))
	_, err = svc.Admins(ctx)
	require.Error(t, err)
	_, err = svc.Users(ctx)
	require.Error(t, err)
	_, err = svc.Distribution(ctx)
	require.Error(t, err)
	_, err = svc.Tracking(ctx)
	require.Error(t, err)
	_, err = svc.Waitlist(ctx)
	require.Error(t, err)

	assert.Len(t, n.Failures, 9)
	for _, msg := range n.Failures {
		assert.Equal(t, "already exists", msg)
	}
	assert.Empty(t, n.Successes)
}

func TestReads_PassThrough(t *testing.T) {
	api := &fakeDataAPI{
		Users:        []models.User{{ID: 1, Username: "a"}, {ID: 2, Username: "b"}},
		Admins:       []models.Profile{{ID: "1", Name: "root"}},
		Distribution: &models.UserDistribution{TotalUsers: 2},
	}
	svc, n := newService(api)
	ctx := context.Background()

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	u, err := svc.User(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "b", u.Username)

	_, err = svc.User(ctx, 99)
	require.Error(t, err)
	assert.Equal(t, []string{"User not found"}, n.Failures)

	admins, err := svc.Admins(ctx)
	require.NoError(t, err)
	assert.Equal(t, "root", admins[0].Name)

	dist, err := svc.Distribution(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), dist.TotalUsers)
}

func TestNewDataService_NilNotifier(t *testing.T) {
	svc := NewDataService(&fakeDataAPI{WaitlistErr: errors.New("x")}, nil, logging.Discard())
	_, err := svc.Waitlist(context.Background())
	require.Error(t, err)
}
