package usecase

import (
	"testing"

	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)

	_, unknownErr := f.auth.Login(f.ctx, &dto.LoginRequest{Username: "nobody", Password: "admin123"})
	_, wrongErr := f.auth.Login(f.ctx, &dto.LoginRequest{Username: "admin", Password: "wrong"})

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLoginReturnsIdentity(t *testing.T) {
	f := newFixture(t)

	identity, err := f.auth.Login(f.ctx, &dto.LoginRequest{Username: " admin ", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, f.admin, *identity)
}

func TestRegisterPatientThenBook(t *testing.T) {
	f := newFixture(t)
	doctor := f.createDoctor(t, "dr_smith", "Dr. Smith")

	_, err := f.auth.RegisterPatient(f.ctx, &dto.RegisterPatientRequest{
		Username: "carol",
		Password: "pw",
		PatientRequest: dto.PatientRequest{
			Name:   "Carol",
			Age:    25,
			Gender: entity.GenderFemale,
			Phone:  "555",
		},
	})
	require.NoError(t, err)

	identity, err := f.auth.Login(f.ctx, &dto.LoginRequest{Username: "carol", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, entity.RolePatient, identity.Role)

	appt := f.book(t, *identity, doctor.ID, "2099-01-01", "09:00")
	assert.Equal(t, entity.AppointmentStatusPending, appt.Status)
	assert.Equal(t, "Dr. Smith", appt.DoctorName)
	assert.Equal(t, "Carol", appt.PatientName)
}

func TestRegisterPatientRejectsTakenUsername(t *testing.T) {
	f := newFixture(t)
	f.registerPatient(t, "carol", "Carol")

	_, err := f.auth.RegisterPatient(f.ctx, &dto.RegisterPatientRequest{
		Username:       "carol",
		Password:       "other",
		PatientRequest: dto.PatientRequest{Name: "Carol Two", Age: 40, Gender: entity.GenderOther, Phone: "1"},
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	var patients int64
	require.NoError(t, f.db.Model(&entity.Patient{}).Count(&patients).Error)
	assert.EqualValues(t, 1, patients)
}

func TestRegisterPatientIsAudited(t *testing.T) {
	f := newFixture(t)
	identity := f.registerPatient(t, "carol", "Carol")

	page, err := f.audit.ListAuditLogs(f.ctx, dto.ListRequest{Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Registered patient Carol", page.Items[0].Action)
	assert.Equal(t, identity.Username, page.Items[0].Username)
	assert.Equal(t, entity.RolePatient, page.Items[0].Role)
}
