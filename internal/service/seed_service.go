package service

import (
	"context"
	"fmt"

	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type seedDoctor struct {
	username       string
	name           string
	specialization string
	phone          string
}

type seedPatient struct {
	username string
	name     string
	age      int
	gender   string
	phone    string
}

type seedVisit struct {
	patient      string
	doctor       string
	date         string
	time         string
	diagnosis    string
	prescription string
}

const (
	seedAdminUsername = "admin"
	seedAdminPassword = "admin123"
	seedUserPassword  = "123"
)

var (
	seedDoctors = []seedDoctor{
		{username: "dr_smith", name: "Dr. Smith", specialization: "Cardiology", phone: "1234567890"},
		{username: "dr_jones", name: "Dr. Jones", specialization: "Neurology", phone: "0987654321"},
	}
	seedPatients = []seedPatient{
		{username: "alice", name: "Alice", age: 30, gender: entity.GenderFemale, phone: "0822547896"},
		{username: "bob", name: "Bob", age: 40, gender: entity.GenderMale, phone: "0248796558"},
	}
	seedVisits = []seedVisit{
		{patient: "alice", doctor: "dr_smith", date: "2026-01-15", time: "10:30", diagnosis: "Hypertension", prescription: "Indapamide"},
		{patient: "bob", doctor: "dr_jones", date: "2026-01-20", time: "11:30", diagnosis: "Migraine", prescription: "Tricyclic"},
	}
)

type SeedService interface {
	Seed(ctx context.Context) error
}

type seedService struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
	apptRepo    repository.AppointmentRepository
	recordRepo  repository.MedicalRecordRepository
}

func NewSeedService(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	apptRepo repository.AppointmentRepository,
	recordRepo repository.MedicalRecordRepository,
) SeedService {
	return &seedService{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		apptRepo:    apptRepo,
		recordRepo:  recordRepo,
	}
}

// Seed inserts the demo accounts that are missing. Demo visits are only added
// to a database without any appointment. Running it twice changes nothing.
func (s *seedService) Seed(ctx context.Context) error {
	tx := s.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, _, err := s.ensureUser(ctx, tx, seedAdminUsername, seedAdminPassword, entity.RoleAdmin); err != nil {
		return err
	}

	doctorIDs := make(map[string]uint, len(seedDoctors))
	for _, d := range seedDoctors {
		user, created, err := s.ensureUser(ctx, tx, d.username, seedUserPassword, entity.RoleDoctor)
		if err != nil {
			return err
		}
		doctor, err := s.doctorRepo.FindByUserID(ctx, tx, user.ID)
		if err != nil {
			return err
		}
		if doctor == nil {
			doctor = &entity.Doctor{UserID: user.ID, Name: d.name, Specialization: d.specialization, Phone: d.phone}
			if err := s.doctorRepo.Create(ctx, tx, doctor); err != nil {
				s.log.Warnf("Failed to seed doctor %s: %+v", d.username, err)
				return err
			}
		}
		if created {
			s.log.Infof("Seeded doctor %s", d.username)
		}
		doctorIDs[d.username] = doctor.ID
	}

	patientIDs := make(map[string]uint, len(seedPatients))
	for _, p := range seedPatients {
		user, created, err := s.ensureUser(ctx, tx, p.username, seedUserPassword, entity.RolePatient)
		if err != nil {
			return err
		}
		patient, err := s.patientRepo.FindByUserID(ctx, tx, user.ID)
		if err != nil {
			return err
		}
		if patient == nil {
			patient = &entity.Patient{UserID: user.ID, Name: p.name, Age: p.age, Gender: p.gender, Phone: p.phone}
			if err := s.patientRepo.Create(ctx, tx, patient); err != nil {
				s.log.Warnf("Failed to seed patient %s: %+v", p.username, err)
				return err
			}
		}
		if created {
			s.log.Infof("Seeded patient %s", p.username)
		}
		patientIDs[p.username] = patient.ID
	}

	total, err := s.apptRepo.Count(ctx, tx)
	if err != nil {
		return err
	}
	if total == 0 {
		for _, v := range seedVisits {
			appointment := &entity.Appointment{
				PatientID: patientIDs[v.patient],
				DoctorID:  doctorIDs[v.doctor],
				Date:      v.date,
				Time:      v.time,
				Status:    entity.AppointmentStatusCompleted,
			}
			if err := s.apptRepo.Create(ctx, tx, appointment); err != nil {
				s.log.Warnf("Failed to seed appointment: %+v", err)
				return err
			}
			record := &entity.MedicalRecord{
				AppointmentID: appointment.ID,
				Diagnosis:     v.diagnosis,
				Prescription:  v.prescription,
			}
			if err := s.recordRepo.Create(ctx, tx, record); err != nil {
				s.log.Warnf("Failed to seed medical record: %+v", err)
				return err
			}
		}
		s.log.Infof("Seeded %d appointments with medical records", len(seedVisits))
	}

	if err := tx.Commit().Error; err != nil {
		s.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (s *seedService) ensureUser(ctx context.Context, tx *gorm.DB, username, password, role string) (*entity.User, bool, error) {
	user, err := s.userRepo.FindByUsername(ctx, tx, username)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		return user, false, nil
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash seed password: %w", err)
	}
	user = &entity.User{Username: username, Password: hashed, Role: role}
	if err := s.userRepo.Create(ctx, tx, user); err != nil {
		s.log.Warnf("Failed to seed user %s: %+v", username, err)
		return nil, false, err
	}
	return user, true, nil
}
