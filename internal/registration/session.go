// Package registration drives a patient-registration workflow end to end:
// load reference lists, stage field edits through the form state, then
// submit the mapped payload to the API.
package registration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hims/hims/internal/client"
	"github.com/hims/hims/internal/patientform"
	"github.com/hims/hims/pkg/wire"
)

// DropdownTypes lists every reference list the registration form consumes.
var DropdownTypes = []string{
	"title",
	"patientcategory",
	"bloodgroup",
	"consultant",
	"referredby",
	"area",
	"city",
	"state",
	"relation",
	"country",
	"organization",
}

// Session is one registration or edit workflow against the API.
type Session struct {
	api        *client.Client
	log        zerolog.Logger
	hospitalID int
	userID     int

	Form      *patientform.State
	Dropdowns map[string][]wire.DropdownOption

	editing   bool
	patientID int
	now       func() time.Time
}

func NewSession(api *client.Client, logger zerolog.Logger, hospitalID, userID int) *Session {
	return &Session{
		api:        api,
		log:        logger,
		hospitalID: hospitalID,
		userID:     userID,
		Form:       patientform.NewState(),
		now:        time.Now,
	}
}

// Begin prepares a blank registration: all reference lists load
// concurrently before the form is usable.
func (s *Session) Begin(ctx context.Context) error {
	s.Dropdowns = s.api.LoadDropdowns(ctx, DropdownTypes...)
	s.Form.SetTitles(s.Dropdowns["title"])
	s.log.Debug().Int("dropdowns", len(s.Dropdowns)).Msg("registration session ready")
	return nil
}

// BeginEdit prepares an edit of an existing record. Reference lists load
// first; the record is fetched and folded into the form only after they
// are in place, so id fields resolve against populated lists.
func (s *Session) BeginEdit(ctx context.Context, patientID int) error {
	if err := s.Begin(ctx); err != nil {
		return err
	}

	detail, err := s.api.GetPatient(ctx, patientID, s.hospitalID)
	if err != nil {
		return fmt.Errorf("load patient %d: %w", patientID, err)
	}
	s.Form.Load(detail)

	s.editing = true
	s.patientID = detail.PatientID
	return nil
}

// Editing reports whether the session was started from an existing record.
func (s *Session) Editing() bool { return s.editing }

// Submit validates the staged form and sends it: a create for a fresh
// session, an update addressed by code for an edit session.
func (s *Session) Submit(ctx context.Context) (*wire.Ack, error) {
	if errs := s.Form.Values.Validate(s.today()); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("form invalid: %s", strings.Join(msgs, "; "))
	}

	if s.editing {
		dto := patientform.BuildUpdate(s.Form.Values, s.now(), s.hospitalID, s.userID)
		ack, err := s.api.UpdatePatient(ctx, &dto)
		if err != nil {
			return nil, fmt.Errorf("update patient: %w", err)
		}
		return ack, nil
	}

	dto := patientform.BuildCreate(s.Form.Values, s.now(), s.hospitalID, s.userID)
	ack, err := s.api.CreatePatient(ctx, &dto)
	if err != nil {
		return nil, fmt.Errorf("register patient: %w", err)
	}
	return ack, nil
}

// Delete removes the record the session is editing.
func (s *Session) Delete(ctx context.Context) error {
	if !s.editing {
		return fmt.Errorf("no loaded patient to delete")
	}
	dto := patientform.BuildDelete(s.patientID, s.Form.Values.Code, s.hospitalID)
	if err := s.api.DeletePatient(ctx, &dto); err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	return nil
}

func (s *Session) today() time.Time {
	n := s.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}
