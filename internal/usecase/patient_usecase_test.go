package usecase

import (
	"testing"

	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patientIDOf(t *testing.T, f *fixture, identity entity.Identity) uint {
	t.Helper()
	profile, err := f.patients.GetProfile(f.ctx, identity)
	require.NoError(t, err)
	return profile.ID
}

func TestDeletePatientWithAppointmentsIsRefused(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t, "dr_who", "Dr. Who")
	carol := f.registerPatient(t, "carol", "Carol")
	f.book(t, carol, doctor.ID, "2099-01-01", "09:00")
	id := patientIDOf(t, f, carol)

	_, err := f.patients.DeletePatient(f.ctx, f.admin, id)
	assert.ErrorIs(t, err, ErrPatientHasAppointments)

	_, err = f.patients.GetPatient(f.ctx, id)
	assert.NoError(t, err)

	var users int64
	require.NoError(t, f.db.Model(&entity.User{}).Where("id = ?", carol.UserID).Count(&users).Error)
	assert.EqualValues(t, 1, users)
}

func TestDeletePatientRemovesUser(t *testing.T) {
	f := newFixture(t)
	carol := f.registerPatient(t, "carol", "Carol")
	id := patientIDOf(t, f, carol)

	deleted, err := f.patients.DeletePatient(f.ctx, f.admin, id)
	require.NoError(t, err)
	assert.Equal(t, "Carol", deleted.Name)

	_, err = f.patients.GetPatient(f.ctx, id)
	assert.ErrorIs(t, err, ErrPatientNotFound)

	var users int64
	require.NoError(t, f.db.Model(&entity.User{}).Where("id = ?", carol.UserID).Count(&users).Error)
	assert.Zero(t, users)

	// the registration entry survives with its user reference cleared
	logs, err := f.audit.ListAuditLogs(f.ctx, dto.ListRequest{Search: "Registered"})
	require.NoError(t, err)
	require.Len(t, logs.Items, 1)
	assert.Nil(t, logs.Items[0].UserID)
	assert.Equal(t, "carol", logs.Items[0].Username)
}

func TestUpdateProfileAndAdminEdit(t *testing.T) {
	f := newFixture(t)
	carol := f.registerPatient(t, "carol", "Carol")

	updated, err := f.patients.UpdateProfile(f.ctx, carol, &dto.PatientRequest{
		Name: "Carol King", Age: 26, Gender: entity.GenderFemale, Phone: "556",
	})
	require.NoError(t, err)
	assert.Equal(t, "Carol King", updated.Name)
	assert.Equal(t, 26, updated.Age)

	_, err = f.patients.UpdatePatient(f.ctx, f.admin, updated.ID, &dto.PatientRequest{
		Name: "Carol Queen", Age: 27, Gender: entity.GenderFemale, Phone: "557",
	})
	require.NoError(t, err)

	logs, err := f.audit.ListAuditLogs(f.ctx, dto.ListRequest{})
	require.NoError(t, err)
	require.Len(t, logs.Items, 3)
	assert.Equal(t, "Updated patient Carol Queen", logs.Items[0].Action)
	assert.Equal(t, "admin", logs.Items[0].Username)
	assert.Equal(t, "Updated patient profile", logs.Items[1].Action)
	assert.Equal(t, "carol", logs.Items[1].Username)
}

func TestGetProfileWithoutPatient(t *testing.T) {
	f := newFixture(t)
	_, err := f.patients.GetProfile(f.ctx, f.admin)
	assert.ErrorIs(t, err, ErrPatientProfileNotFound)
}

func TestPatientDetailIncludesRecords(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t, "dr_who", "Dr. Who")
	carol := f.registerPatient(t, "carol", "Carol")
	appt := f.book(t, carol, doctor.ID, "2099-01-01", "09:00")

	_, err := f.records.AddRecord(f.ctx, f.doctorIdentity(t, doctor), appt.ID, &dto.MedicalRecordRequest{
		Diagnosis: "Flu", Prescription: "Rest",
	})
	require.NoError(t, err)

	detail, err := f.patients.GetPatientDetail(f.ctx, appt.PatientID)
	require.NoError(t, err)
	assert.Equal(t, "Carol", detail.Patient.Name)
	require.Len(t, detail.Records, 1)
	assert.Equal(t, "Flu", detail.Records[0].Diagnosis)
	assert.Equal(t, "Dr. Who", detail.Records[0].DoctorName)
}

func TestListPatientsSearch(t *testing.T) {
	f := newFixture(t)
	f.registerPatient(t, "alice", "Alice")
	f.registerPatient(t, "bob", "Bob")

	page, err := f.patients.ListPatients(f.ctx, dto.ListRequest{Search: "ali"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Alice", page.Items[0].Name)
	assert.EqualValues(t, 1, page.Total)
}
