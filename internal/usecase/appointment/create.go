package appointment

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
)

// ======================================================
// REPORT
// ======================================================

// Step is one write of a multi-step create.
type Step struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
	Err  error  `json:"-"`
}

func (s Step) OK() bool { return s.Err == nil }

func (s Step) MarshalJSON() ([]byte, error) {
	out := struct {
		Name  string `json:"name"`
		Rows  int    `json:"rows"`
		Error string `json:"error,omitempty"`
	}{Name: s.Name, Rows: s.Rows}
	if s.Err != nil {
		out.Error = s.Err.Error()
	}
	return json.Marshal(out)
}

// WriteReport lists every attempted write in order. Writes are not rolled
// back when a later step fails.
type WriteReport struct {
	AppointmentID string `json:"appointment_id"`
	Steps         []Step `json:"steps"`
}

func (r WriteReport) Failed() []string {
	var out []string
	for _, s := range r.Steps {
		if !s.OK() {
			out = append(out, s.Name)
		}
	}
	return out
}

// Err is a PartialWriteError naming the failed steps, or nil.
func (r WriteReport) Err() error {
	var pw *httperr.PartialWriteError
	for _, s := range r.Steps {
		if s.OK() {
			continue
		}
		if pw == nil {
			pw = &httperr.PartialWriteError{RootID: r.AppointmentID}
		}
		pw.Failed = append(pw.Failed, s.Name)
		pw.Causes = append(pw.Causes, s.Err)
	}
	if pw == nil {
		return nil
	}
	return pw
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	logger *zap.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	logger *zap.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		audit:  audit,
		logger: logger,
	}
}

// Execute validates in before touching the gateway, writes the appointment
// row and then every non-empty child batch. A failed root write is returned
// as is; failed child batches are reported and returned as a
// PartialWriteError alongside the report.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor audit.Actor,
	in domain.NewAppointment,
) (WriteReport, error) {

	var report WriteReport

	if err := in.Validate(); err != nil {
		return report, err
	}

	// --------------------------------------------------
	// Root row
	// --------------------------------------------------
	ap := in.Row()
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return report, err
	}
	report.AppointmentID = ap.ID
	report.Steps = append(report.Steps, Step{Name: "appointment", Rows: 1})

	// --------------------------------------------------
	// Child batches, each attempted regardless of the others
	// --------------------------------------------------
	batch := func(name string, n int, write func() error) {
		if n == 0 {
			return
		}
		err := write()
		if err != nil {
			uc.logger.Warn("appointment child write failed",
				zap.String("appointment_id", ap.ID),
				zap.String("step", name),
				zap.Error(err),
			)
		}
		report.Steps = append(report.Steps, Step{Name: name, Rows: n, Err: err})
	}

	services := in.ServiceRows(ap.ID)
	batch("services", len(services), func() error { return uc.repo.CreateServices(ctx, services) })

	formulas := in.FormulaRows(ap.ID)
	batch("formulas", len(formulas), func() error { return uc.repo.CreateFormulas(ctx, formulas) })

	treatments := in.TreatmentRows(ap.ID)
	batch("treatments", len(treatments), func() error { return uc.repo.CreateTreatments(ctx, treatments) })

	products := in.ProductRows(ap.ID)
	batch("products", len(products), func() error { return uc.repo.CreateProducts(ctx, products) })

	photos := in.PhotoRows(ap.ID)
	batch("photos", len(photos), func() error { return uc.repo.CreatePhotos(ctx, photos) })

	uc.audit.Dispatch(actor.Event(
		audit.ActionAppointmentCreated,
		"appointment",
		ap.ID,
		map[string]any{
			"client_id":    ap.ClientID,
			"stylist_id":   ap.StylistID,
			"failed_steps": report.Failed(),
		},
	))

	return report, report.Err()
}
