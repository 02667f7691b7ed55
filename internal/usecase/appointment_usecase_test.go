package usecase

import (
	"testing"

	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookAppointmentStatus(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t, "dr_who", "Dr. Who")
	carol := f.registerPatient(t, "carol", "Carol")

	today := f.book(t, carol, doctor.ID, "2025-06-10", "08:00")
	assert.Equal(t, entity.AppointmentStatusPending, today.Status)

	future := f.book(t, carol, doctor.ID, "2099-01-01", "09:00")
	assert.Equal(t, entity.AppointmentStatusPending, future.Status)
	assert.Equal(t, "2025-06-10", f.appts.Today())
}

func TestBookAppointmentValidation(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t, "dr_who", "Dr. Who")
	carol := f.registerPatient(t, "carol", "Carol")

	tests := []struct {
		date, time string
		want       error
	}{
		{"2000-01-01", "09:00", service.ErrPastDate},
		{"01/01/2099", "09:00", service.ErrInvalidDate},
		{"2099-01-01", "9am", service.ErrInvalidTime},
	}
	for _, tt := range tests {
		_, err := f.appts.BookAppointment(f.ctx, carol, &dto.AppointmentRequest{DoctorID: doctor.ID, Date: tt.date, Time: tt.time})
		assert.ErrorIs(t, err, tt.want)
	}

	assert.Equal(t, "Cannot select a past date", service.ErrPastDate.Error())

	n, err := f.apptRepo.Count(f.ctx, f.db)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBookAppointmentUnknownDoctor(t *testing.T) {
	f := newFixture(t)
	carol := f.registerPatient(t, "carol", "Carol")

	_, err := f.appts.BookAppointment(f.ctx, carol, &dto.AppointmentRequest{DoctorID: 42, Date: "2099-01-01", Time: "09:00"})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestBookAppointmentRequiresPatientProfile(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t, "dr_who", "Dr. Who")

	_, err := f.appts.BookAppointment(f.ctx, f.admin, &dto.AppointmentRequest{DoctorID: doctor.ID, Date: "2099-01-01", Time: "09:00"})
	assert.ErrorIs(t, err, ErrPatientProfileNotFound)
}

func TestListPatientAppointmentsCompletesPastOnes(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t, "dr_who", "Dr. Who")
	carol := f.registerPatient(t, "carol", "Carol")
	bob := f.registerPatient(t, "bob", "Bob")

	soon := f.book(t, carol, doctor.ID, "2025-06-11", "10:00")
	later := f.book(t, carol, doctor.ID, "2025-07-01", "10:00")
	bobs := f.book(t, bob, doctor.ID, "2025-06-11", "11:00")

	*f.clock = fixedNow.AddDate(0, 0, 3)

	page, err := f.appts.ListPatientAppointments(f.ctx, carol, dto.ListRequest{Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	statuses := map[uint]entity.AppointmentStatus{}
	for _, a := range page.Items {
		statuses[a.ID] = a.Status
	}
	assert.Equal(t, entity.AppointmentStatusCompleted, statuses[soon.ID])
	assert.Equal(t, entity.AppointmentStatusPending, statuses[later.ID])

	// newest first
	assert.Equal(t, later.ID, page.Items[0].ID)

	// other patients are only reconciled when they look at their own list
	other, err := f.appts.GetPatientAppointment(f.ctx, bob, bobs.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusPending, other.Status)
}

func TestUpdateAppointment(t *testing.T) {
	f := newFixture(t)
	smith := f.createDoctor(t, "dr_smith", "Dr. Smith")
	jones := f.createDoctor(t, "dr_jones", "Dr. Jones")
	carol := f.registerPatient(t, "carol", "Carol")
	bob := f.registerPatient(t, "bob", "Bob")
	appt := f.book(t, carol, smith.ID, "2099-01-01", "09:00")

	updated, err := f.appts.UpdateAppointment(f.ctx, carol, appt.ID, &dto.AppointmentRequest{DoctorID: jones.ID, Date: "2099-02-02", Time: "14:15"})
	require.NoError(t, err)
	assert.Equal(t, "2099-02-02", updated.Date)
	assert.Equal(t, "14:15", updated.Time)
	assert.Equal(t, "Dr. Jones", updated.DoctorName)
	assert.Equal(t, entity.AppointmentStatusPending, updated.Status)

	_, err = f.appts.UpdateAppointment(f.ctx, bob, appt.ID, &dto.AppointmentRequest{DoctorID: smith.ID, Date: "2099-03-03", Time: "09:00"})
	assert.ErrorIs(t, err, ErrAppointmentNotOwned)

	_, err = f.appts.UpdateAppointment(f.ctx, carol, appt.ID, &dto.AppointmentRequest{DoctorID: smith.ID, Date: "2000-01-01", Time: "09:00"})
	assert.ErrorIs(t, err, service.ErrPastDate)

	_, err = f.appts.UpdateAppointment(f.ctx, carol, 999, &dto.AppointmentRequest{DoctorID: smith.ID, Date: "2099-03-03", Time: "09:00"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	logs, err := f.audit.ListAuditLogs(f.ctx, dto.ListRequest{Search: "Updated appointment"})
	require.NoError(t, err)
	require.Len(t, logs.Items, 1)
}

func TestCancelAppointment(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t, "dr_who", "Dr. Who")
	carol := f.registerPatient(t, "carol", "Carol")
	bob := f.registerPatient(t, "bob", "Bob")

	withRecord := f.book(t, carol, doctor.ID, "2099-01-01", "09:00")
	plain := f.book(t, carol, doctor.ID, "2099-01-02", "09:00")

	_, err := f.records.AddRecord(f.ctx, f.doctorIdentity(t, doctor), withRecord.ID, &dto.MedicalRecordRequest{Diagnosis: "Flu", Prescription: "Rest"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.appts.CancelAppointment(f.ctx, carol, withRecord.ID), ErrAppointmentHasRecord)
	_, err = f.appts.GetPatientAppointment(f.ctx, carol, withRecord.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, f.appts.CancelAppointment(f.ctx, bob, plain.ID), ErrAppointmentNotOwned)

	require.NoError(t, f.appts.CancelAppointment(f.ctx, carol, plain.ID))
	_, err = f.appts.GetPatientAppointment(f.ctx, carol, plain.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	assert.ErrorIs(t, f.appts.CancelAppointment(f.ctx, carol, plain.ID), ErrAppointmentNotFound)
}

func TestListDoctorAppointmentsSearchesPatientName(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t, "dr_who", "Dr. Who")
	other := f.createDoctor(t, "dr_no", "Dr. No")
	carol := f.registerPatient(t, "carol", "Carol")
	bob := f.registerPatient(t, "bob", "Bob")

	f.book(t, carol, doctor.ID, "2099-01-01", "09:00")
	f.book(t, bob, doctor.ID, "2099-01-02", "09:00")
	f.book(t, bob, other.ID, "2099-01-03", "09:00")

	all, err := f.appts.ListDoctorAppointments(f.ctx, f.doctorIdentity(t, doctor), dto.ListRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.Total)

	bobs, err := f.appts.ListDoctorAppointments(f.ctx, f.doctorIdentity(t, doctor), dto.ListRequest{Search: "BOB"})
	require.NoError(t, err)
	require.Len(t, bobs.Items, 1)
	assert.Equal(t, "Bob", bobs.Items[0].PatientName)

	_, err = f.appts.ListDoctorAppointments(f.ctx, f.admin, dto.ListRequest{})
	assert.ErrorIs(t, err, ErrDoctorProfileNotFound)
}
