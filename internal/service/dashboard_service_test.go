package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/salon-service/internal/domain"
	"github.com/spec-kit/salon-service/internal/repository"
)

func TestDashboardForCustomer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.window(t, "09:00", "12:00")
	appt := f.book(t, f.customer, 9, 0)
	dave := f.user(t, "dave", domain.RoleCustomer)
	f.book(t, dave, 10, 0)

	summary, err := f.dashboard.Summary(ctx, f.customer)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Appointments)
	assert.Equal(t, int64(1), summary.Upcoming)
	assert.Equal(t, int64(1), summary.Today)
	assert.Equal(t, int64(1), summary.PendingPayments)
	require.Len(t, summary.RecentAppointments, 1)
	assert.Equal(t, appt.ID, summary.RecentAppointments[0].ID)
	assert.Nil(t, summary.StaffTodayLoad)
}

func TestDashboardForAdminIncludesStaffLoad(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.window(t, "09:00", "12:00")
	f.book(t, f.customer, 9, 0)
	late := f.book(t, f.customer, 11, 0)
	cancelled := f.book(t, f.customer, 10, 0)
	_, err := f.appointments.Cancel(ctx, f.customer, cancelled.ID)
	require.NoError(t, err)

	summary, err := f.dashboard.Summary(ctx, f.admin)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Appointments)
	assert.Equal(t, int64(2), summary.Upcoming)
	require.Len(t, summary.RecentAppointments, 3)
	assert.Equal(t, late.ID, summary.RecentAppointments[0].ID)
	assert.Equal(t, []repository.StaffLoad{{StaffUsername: "stylist", BookedSlots: 2}}, summary.StaffTodayLoad)

	staffView, err := f.dashboard.Summary(ctx, f.staff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), staffView.Appointments)
	assert.Nil(t, staffView.StaffTodayLoad)
}

func TestDashboardEmptyScope(t *testing.T) {
	f := newFixture(t)

	summary, err := f.dashboard.Summary(context.Background(), f.customer)
	require.NoError(t, err)
	assert.Zero(t, summary.Appointments)
	assert.Empty(t, summary.RecentAppointments)
}
