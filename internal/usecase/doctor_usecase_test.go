package usecase

import (
	"fmt"
	"math"
	"testing"

	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDoctorIsAudited(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t, "dr_who", "Dr. Who")

	assert.NotZero(t, doctor.ID)
	assert.NotZero(t, doctor.UserID)

	logs, err := f.audit.ListAuditLogs(f.ctx, dto.ListRequest{})
	require.NoError(t, err)
	require.Len(t, logs.Items, 1)
	assert.Equal(t, "Added new doctor Dr. Who", logs.Items[0].Action)
	assert.Equal(t, "admin", logs.Items[0].Username)
}

func TestCreateDoctorRejectsTakenUsername(t *testing.T) {
	f := newFixture(t)

	_, err := f.doctors.CreateDoctor(f.ctx, f.admin, &dto.CreateDoctorRequest{
		Username:      "admin",
		Password:      "x",
		DoctorRequest: dto.DoctorRequest{Name: "Dr. Admin", Specialization: "None", Phone: "1"},
	})
	assert.ErrorIs(t, err, ErrDoctorUsernameTaken)

	count, err := f.doctors.ListAllDoctors(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, count)
}

func TestUpdateDoctorNamesAdminAsActor(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t, "dr_who", "Dr. Who")

	updated, err := f.doctors.UpdateDoctor(f.ctx, f.admin, doctor.ID, &dto.DoctorRequest{
		Name:           "Dr. Who II",
		Specialization: "Time",
		Phone:          "42",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Who II", updated.Name)

	logs, err := f.audit.ListAuditLogs(f.ctx, dto.ListRequest{Search: "edited"})
	require.NoError(t, err)
	require.Len(t, logs.Items, 1)
	assert.Equal(t, "Edited doctor Dr. Who II", logs.Items[0].Action)
	assert.Equal(t, "admin", logs.Items[0].Username)
}

func TestUpdateDoctorNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.doctors.UpdateDoctor(f.ctx, f.admin, 999, &dto.DoctorRequest{Name: "x", Specialization: "y", Phone: "z"})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestDeleteDoctorWithoutAppointments(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t, "dr_who", "Dr. Who")
	before := f.auditCount(t)

	_, err := f.doctors.DeleteDoctor(f.ctx, f.admin, doctor.ID)
	require.NoError(t, err)

	_, err = f.doctors.GetDoctor(f.ctx, doctor.ID)
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	var users int64
	require.NoError(t, f.db.Model(&entity.User{}).Where("id = ?", doctor.UserID).Count(&users).Error)
	assert.Zero(t, users)

	assert.Equal(t, before+1, f.auditCount(t))
	logs, err := f.audit.ListAuditLogs(f.ctx, dto.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Deleted doctor Dr. Who", logs.Items[0].Action)

	// a second delete of the same id is a not found
	_, err = f.doctors.DeleteDoctor(f.ctx, f.admin, doctor.ID)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestDeleteDoctorWithAppointmentsIsRefused(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t, "dr_who", "Dr. Who")
	patient := f.registerPatient(t, "carol", "Carol")
	f.book(t, patient, doctor.ID, "2099-01-01", "09:00")
	before := f.auditCount(t)

	_, err := f.doctors.DeleteDoctor(f.ctx, f.admin, doctor.ID)
	assert.ErrorIs(t, err, ErrDoctorHasAppointments)

	still, err := f.doctors.GetDoctor(f.ctx, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Who", still.Name)

	var users int64
	require.NoError(t, f.db.Model(&entity.User{}).Where("id = ?", doctor.UserID).Count(&users).Error)
	assert.EqualValues(t, 1, users)
	assert.Equal(t, before, f.auditCount(t))
}

func TestListDoctorsPaginatesAndSearches(t *testing.T) {
	f := newFixture(t)
	for i := 1; i <= 12; i++ {
		f.createDoctor(t, fmt.Sprintf("dr_%02d", i), fmt.Sprintf("Dr. Number %02d", i))
	}
	f.createDoctor(t, "dr_smith", "Dr. Smith")

	first, err := f.doctors.ListDoctors(f.ctx, dto.ListRequest{Page: 1})
	require.NoError(t, err)
	assert.Len(t, first.Items, 10)
	assert.EqualValues(t, 13, first.Total)
	assert.Equal(t, 2, first.Pages)
	assert.Equal(t, []int{1, 2}, first.Range)

	second, err := f.doctors.ListDoctors(f.ctx, dto.ListRequest{Page: 2})
	require.NoError(t, err)
	assert.Len(t, second.Items, 3)

	beyond, err := f.doctors.ListDoctors(f.ctx, dto.ListRequest{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)

	for _, page := range []int{922337203685477582, 1000000000000000000, math.MaxInt} {
		huge, err := f.doctors.ListDoctors(f.ctx, dto.ListRequest{Page: page})
		require.NoError(t, err)
		assert.Empty(t, huge.Items, "page %d", page)
		assert.EqualValues(t, 13, huge.Total)
	}

	found, err := f.doctors.ListDoctors(f.ctx, dto.ListRequest{Search: "SMI", Page: 1})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Dr. Smith", found.Items[0].Name)
}

func TestGetDoctorByUser(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t, "dr_who", "Dr. Who")

	got, err := f.doctors.GetDoctorByUser(f.ctx, f.doctorIdentity(t, doctor))
	require.NoError(t, err)
	assert.Equal(t, doctor.ID, got.ID)

	_, err = f.doctors.GetDoctorByUser(f.ctx, f.admin)
	assert.ErrorIs(t, err, ErrDoctorProfileNotFound)
}
