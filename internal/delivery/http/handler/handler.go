package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/delivery/http/middleware"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/infrastructure/session"

	"github.com/gofiber/schema"
	"github.com/gorilla/mux"
)

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag("form")
	d.IgnoreUnknownKeys(true)
	return d
}

// decodeForm fills dst from the posted form fields.
func decodeForm(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	return formDecoder.Decode(dst, r.PostForm)
}

// decodePatientForm is decodeForm for forms embedding dto.PatientRequest. A blank age is
// rejected here because the decoder leaves it at zero.
func decodePatientForm(r *http.Request, dst any) error {
	if err := decodeForm(r, dst); err != nil {
		return err
	}
	if strings.TrimSpace(r.PostForm.Get("age")) == "" {
		return schema.MultiError{"age": errors.New("age is empty")}
	}
	return nil
}

// formErrorMessage explains a decodeForm failure in the words shown to the user.
func formErrorMessage(err error) string {
	var multi schema.MultiError
	if errors.As(err, &multi) {
		if _, ok := multi["age"]; ok {
			return "Age must be a number"
		}
		if _, ok := multi["doctor_id"]; ok {
			return "Please select a doctor"
		}
	}
	return "Invalid form submission"
}

func currentIdentity(r *http.Request) entity.Identity {
	identity, _ := middleware.GetIdentityFromContext(r.Context())
	return identity
}

func addFlash(r *http.Request, category, message string) {
	if s := session.FromContext(r.Context()); s != nil {
		s.AddFlash(category, message)
	}
}

// pathID reads a numeric path variable. ok is false for anything that is not a positive integer.
func pathID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// listRequest reads ?search= and ?page=. A POSTed search field works too.
func listRequest(r *http.Request) dto.ListRequest {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 1
	}
	return dto.ListRequest{
		Search: r.FormValue("search"),
		Page:   page,
	}
}
