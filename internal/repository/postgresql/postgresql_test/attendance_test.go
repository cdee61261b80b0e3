package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/glowdesk/salon-backend-go/internal/domain/attendance"
	"github.com/glowdesk/salon-backend-go/internal/domain/staff"
	"github.com/glowdesk/salon-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	in := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	saved, err := repo.Save(ctx, attendance.Record{
		StaffID: "s1", StaffName: "Maya", Date: "2024-03-04",
		PunchIn: &in, Status: attendance.StatusPresent,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", saved.Date)
	require.NotNil(t, saved.PunchIn)
	assert.True(t, in.Equal(*saved.PunchIn))

	got, err := repo.GetByStaffAndDate(ctx, "Maya", "2024-03-04")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, saved.ID, got.ID)

	out := in.Add(8 * time.Hour)
	updated, err := repo.Update(ctx, "Maya", "2024-03-04", attendance.Patch{PunchOut: &out})
	require.NoError(t, err)
	require.NotNil(t, updated.PunchIn)
	require.NotNil(t, updated.PunchOut)
	assert.True(t, out.Equal(*updated.PunchOut))

	absent := attendance.StatusAbsent
	cleared, err := repo.Update(ctx, "Maya", "2024-03-04", attendance.Patch{Status: &absent, ClearPunchTimes: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.PunchIn)
	assert.Nil(t, cleared.PunchOut)
	assert.Equal(t, attendance.StatusAbsent, cleared.Status)

	month, err := attendance.ParseMonth("2024-03")
	require.NoError(t, err)
	records, err := repo.ListByStaffAndMonth(ctx, "Maya", month)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	require.NoError(t, repo.Delete(ctx, "Maya", "2024-03-04"))
	assert.ErrorIs(t, repo.Delete(ctx, "Maya", "2024-03-04"), attendance.ErrRecordNotFound)

	_, err = repo.Update(ctx, "Maya", "2024-03-04", attendance.Patch{PunchOut: &out})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)

	missing, err := repo.GetByStaffAndDate(ctx, "Maya", "2024-03-04")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStaffRepository_Upsert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewStaffRepository(db)

	created, err := repo.Upsert(ctx, staff.Member{
		Name:       "Ana",
		Role:       "colorist",
		SalaryType: staff.SalaryTypeHourly,
		HourlyRate: decimal.NewFromInt(150),
		Active:     true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Nil(t, created.BaseSalary)

	created.Active = false
	_, err = repo.Upsert(ctx, created)
	require.NoError(t, err)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	byName, err := repo.GetByName(ctx, "Ana")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150).Equal(byName.HourlyRate))

	_, err = repo.GetByName(ctx, "Nobody")
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}
