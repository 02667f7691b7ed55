package dto

import "strings"

// Request DTOs

// PatientRequest is shared by registration, the admin edit form and the profile page.
type PatientRequest struct {
	Name   string `form:"name" validate:"required,max=100"`
	Age    int    `form:"age" validate:"gte=0,lte=150"`
	Gender string `form:"gender" validate:"required,oneof=Male Female Other"`
	Phone  string `form:"phone" validate:"required,max=20"`
}

// Normalize trims the text fields and capitalises gender so "female" is accepted.
func (r *PatientRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	g := strings.ToLower(strings.TrimSpace(r.Gender))
	if g != "" {
		g = strings.ToUpper(g[:1]) + g[1:]
	}
	r.Gender = g
}

// Response DTOs

type PatientResponse struct {
	ID     uint
	UserID uint
	Name   string
	Age    int
	Gender string
	Phone  string
}

type PatientDetailResponse struct {
	Patient PatientResponse
	Records []MedicalRecordResponse
}
