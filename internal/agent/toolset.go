package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/healthline-ai/hospital-assistant/internal/booking"
	"github.com/healthline-ai/hospital-assistant/internal/observability/metrics"
	"github.com/healthline-ai/hospital-assistant/internal/reference"
	"github.com/healthline-ai/hospital-assistant/internal/schedule"
	"github.com/healthline-ai/hospital-assistant/pkg/logging"
)

// Tool names, stable across the agent prompt, the dispatch table and the CLI.
const (
	ToolFindDoctor      = "find_doctor_by_name"
	ToolListBySpecialty = "list_doctors_by_specialty"
	ToolAvailableSlots  = "get_available_slots"
	ToolBook            = "book_appointment"
	ToolFindByPhone     = "find_appointments_by_phone"
	ToolGetAppointment  = "get_appointment"
	ToolCancel          = "cancel_appointment"
	ToolHospitalInfo    = "get_hospital_info"
	ToolListSpecialties = "list_specialties"
)

// Toolset is the fixed capability table the agent dispatches into. Every tool
// returns a result envelope: success flag, human-readable message, optional
// data. Core errors are translated here; no fault crosses this boundary.
type Toolset struct {
	bookings  *booking.Service
	catalog   booking.Store
	reference *reference.Store
	logger    *logging.Logger
	metrics   *metrics.ChatMetrics
}

// NewToolset wires the deterministic operations behind the agent tools.
func NewToolset(bookings *booking.Service, catalog booking.Store, ref *reference.Store, logger *logging.Logger, m *metrics.ChatMetrics) *Toolset {
	if bookings == nil {
		panic("agent: booking service required")
	}
	if catalog == nil {
		panic("agent: catalog store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Toolset{
		bookings:  bookings,
		catalog:   catalog,
		reference: ref,
		logger:    logger,
		metrics:   m,
	}
}

// Definitions lists the tool declarations handed to the model.
func (t *Toolset) Definitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        ToolFindDoctor,
			Description: "Find schedule entries for a doctor by full or partial name. Returns all matching schedule rows plus a de-duplicated doctor list for disambiguation.",
			Params: []ToolParam{
				{Name: "doctor_name", Description: "Full or partial doctor name, e.g. 'ali mehdi'", Required: true},
			},
		},
		{
			Name:        ToolListBySpecialty,
			Description: "List doctors whose specialty contains the given text, e.g. 'cardio' or 'Internal Medicine'.",
			Params: []ToolParam{
				{Name: "specialty", Description: "Specialty name or fragment", Required: true},
			},
		},
		{
			Name:        ToolAvailableSlots,
			Description: "Compute real-time bookable slots over the coming days, accounting for absences and existing bookings. Filter by doctor name, specialty, or both.",
			Params: []ToolParam{
				{Name: "doctor_name", Description: "Optional doctor name filter"},
				{Name: "specialty", Description: "Optional specialty filter"},
			},
		},
		{
			Name:        ToolBook,
			Description: "Book an appointment for a slot previously returned by get_available_slots. Returns the appointment id and token number.",
			Params: []ToolParam{
				{Name: "doctor_name", Description: "Doctor display name exactly as returned in the slot", Required: true},
				{Name: "booking_date", Description: "Date in YYYY-MM-DD form, e.g. 2025-08-18", Required: true},
				{Name: "booking_time", Description: "Time block exactly as returned in the slot, e.g. '04:00PM TO 05:00PM'", Required: true},
				{Name: "patient_name", Description: "Patient's full name", Required: true},
				{Name: "patient_phone", Description: "Patient's phone number", Required: true},
			},
		},
		{
			Name:        ToolFindByPhone,
			Description: "List existing appointments booked under a phone number.",
			Params: []ToolParam{
				{Name: "patient_phone", Description: "Phone number used at booking time", Required: true},
			},
		},
		{
			Name:        ToolGetAppointment,
			Description: "Look up one appointment by its appointment id.",
			Params: []ToolParam{
				{Name: "appointment_id", Description: "Appointment id returned at booking time", Required: true},
			},
		},
		{
			Name:        ToolCancel,
			Description: "Cancel an appointment by its appointment id.",
			Params: []ToolParam{
				{Name: "appointment_id", Description: "Appointment id returned at booking time", Required: true},
			},
		},
		{
			Name:        ToolHospitalInfo,
			Description: "Get the hospital's name, address, phone number and opening hours.",
		},
		{
			Name:        ToolListSpecialties,
			Description: "List every specialty available at the hospital.",
		},
	}
}

// Execute runs one tool call and returns its result envelope.
func (t *Toolset) Execute(ctx context.Context, call ToolCall) ToolResult {
	var result map[string]any
	switch call.Name {
	case ToolFindDoctor:
		result = t.findDoctor(ctx, call.Args)
	case ToolListBySpecialty:
		result = t.listBySpecialty(ctx, call.Args)
	case ToolAvailableSlots:
		result = t.availableSlots(ctx, call.Args)
	case ToolBook:
		result = t.book(ctx, call.Args)
	case ToolFindByPhone:
		result = t.findByPhone(ctx, call.Args)
	case ToolGetAppointment:
		result = t.getAppointment(ctx, call.Args)
	case ToolCancel:
		result = t.cancel(ctx, call.Args)
	case ToolHospitalInfo:
		result = t.hospitalInfo(ctx)
	case ToolListSpecialties:
		result = t.listSpecialties(ctx)
	default:
		result = failure(fmt.Sprintf("unknown tool %q", call.Name))
	}

	status := "failure"
	if ok, _ := result["success"].(bool); ok {
		status = "success"
	}
	t.metrics.ObserveToolCall(call.Name, status)
	t.logger.Debug("tool executed", "tool", call.Name, "status", status)
	return ToolResult{Name: call.Name, Response: result}
}

func (t *Toolset) findDoctor(ctx context.Context, args map[string]any) map[string]any {
	query, ok := strArg(args, "doctor_name")
	if !ok {
		return failure("doctor_name is required")
	}
	catalog, err := t.catalog.LoadCatalog(ctx)
	if err != nil {
		return t.storageFailure(err)
	}

	matches := schedule.MatchDoctors(query, catalog)
	if len(matches) == 0 {
		return success(fmt.Sprintf("No doctor matching %q was found.", query), nil)
	}
	doctors := schedule.UniqueDoctors(matches)
	return success(
		fmt.Sprintf("Found %d doctor(s) matching %q.", len(doctors), query),
		map[string]any{"doctors": jsonify(doctors), "schedules": jsonify(matches)},
	)
}

func (t *Toolset) listBySpecialty(ctx context.Context, args map[string]any) map[string]any {
	query, ok := strArg(args, "specialty")
	if !ok {
		return failure("specialty is required")
	}
	catalog, err := t.catalog.LoadCatalog(ctx)
	if err != nil {
		return t.storageFailure(err)
	}

	matches := schedule.FilterBySpecialty(query, catalog)
	if len(matches) == 0 {
		return success(fmt.Sprintf("No doctors found for specialty %q.", query), nil)
	}
	doctors := schedule.UniqueDoctors(matches)
	return success(
		fmt.Sprintf("Found %d doctor(s) for specialty %q.", len(doctors), query),
		map[string]any{"doctors": jsonify(doctors), "schedules": jsonify(matches)},
	)
}

func (t *Toolset) availableSlots(ctx context.Context, args map[string]any) map[string]any {
	doctor, _ := strArg(args, "doctor_name")
	specialty, _ := strArg(args, "specialty")

	slots, err := t.bookings.ComputeSlots(ctx, booking.SlotQuery{Doctor: doctor, Specialty: specialty})
	if err != nil {
		return t.storageFailure(err)
	}
	if len(slots) == 0 {
		return success("No available slots were found for that query.", map[string]any{"slots": []any{}})
	}
	return success(
		fmt.Sprintf("Found %d available slot(s).", len(slots)),
		map[string]any{"slots": jsonify(slots)},
	)
}

func (t *Toolset) book(ctx context.Context, args map[string]any) map[string]any {
	req := booking.BookRequest{}
	fields := []struct {
		name string
		dst  *string
	}{
		{"doctor_name", &req.DoctorName},
		{"booking_date", &req.BookingDate},
		{"booking_time", &req.BookingTime},
		{"patient_name", &req.PatientName},
		{"patient_phone", &req.PatientPhone},
	}
	for _, f := range fields {
		value, ok := strArg(args, f.name)
		if !ok {
			return failure(f.name + " is required")
		}
		*f.dst = value
	}

	booked, err := t.bookings.Book(ctx, req)
	switch {
	case err == nil:
		return success(
			fmt.Sprintf("Appointment confirmed with %s on %s at %s. Appointment id %s, token number %d.",
				booked.DoctorName, booked.BookingDate, booked.BookingTime, booked.AppointmentID, booked.TokenNumber),
			map[string]any{"booking": jsonify(booked)},
		)
	case errors.Is(err, booking.ErrCapacityExceeded):
		return failure(fmt.Sprintf("%s is fully booked on %s. Please pick another date.", req.DoctorName, req.BookingDate))
	case errors.Is(err, booking.ErrDoctorNotFound):
		return failure(fmt.Sprintf("No doctor named %q exists in the schedule; this looks like a data problem rather than a typo.", req.DoctorName))
	case errors.Is(err, booking.ErrSlotUnavailable):
		return failure(fmt.Sprintf("%s is not available on %s at %s. Please re-check the available slots.", req.DoctorName, req.BookingDate, req.BookingTime))
	default:
		return t.storageFailure(err)
	}
}

func (t *Toolset) findByPhone(ctx context.Context, args map[string]any) map[string]any {
	phone, ok := strArg(args, "patient_phone")
	if !ok {
		return failure("patient_phone is required")
	}
	found, err := t.bookings.FindByPhone(ctx, phone)
	if err != nil {
		return t.storageFailure(err)
	}
	if len(found) == 0 {
		return success(fmt.Sprintf("No appointments found for phone %s.", phone), map[string]any{"appointments": []any{}})
	}
	return success(
		fmt.Sprintf("Found %d appointment(s) for phone %s.", len(found), phone),
		map[string]any{"appointments": jsonify(found)},
	)
}

func (t *Toolset) getAppointment(ctx context.Context, args map[string]any) map[string]any {
	id, ok := strArg(args, "appointment_id")
	if !ok {
		return failure("appointment_id is required")
	}
	found, err := t.bookings.FindByID(ctx, id)
	if err != nil {
		return t.storageFailure(err)
	}
	if len(found) == 0 {
		return success(fmt.Sprintf("No appointment exists with id %s.", id), map[string]any{"appointments": []any{}})
	}
	return success("Appointment found.", map[string]any{"appointments": jsonify(found)})
}

func (t *Toolset) cancel(ctx context.Context, args map[string]any) map[string]any {
	id, ok := strArg(args, "appointment_id")
	if !ok {
		return failure("appointment_id is required")
	}
	removed, err := t.bookings.Cancel(ctx, id)
	switch {
	case err == nil:
		return success(
			fmt.Sprintf("Appointment %s with %s on %s has been cancelled.", removed.AppointmentID, removed.DoctorName, removed.BookingDate),
			map[string]any{"booking": jsonify(removed)},
		)
	case errors.Is(err, booking.ErrNotFound):
		return failure(fmt.Sprintf("No appointment exists with id %s.", id))
	default:
		return t.storageFailure(err)
	}
}

func (t *Toolset) hospitalInfo(ctx context.Context) map[string]any {
	if t.reference == nil {
		return failure("hospital information is not configured")
	}
	info := t.reference.HospitalInfo(ctx)
	return success("Hospital information retrieved.", map[string]any{"hospital": jsonify(info)})
}

func (t *Toolset) listSpecialties(ctx context.Context) map[string]any {
	catalog, err := t.catalog.LoadCatalog(ctx)
	if err != nil {
		return t.storageFailure(err)
	}
	specialties := schedule.UniqueSpecialties(catalog)
	if len(specialties) == 0 {
		return success("No specialties are currently listed.", map[string]any{"specialties": []any{}})
	}
	return success(
		fmt.Sprintf("The hospital offers %d specialties.", len(specialties)),
		map[string]any{"specialties": jsonify(specialties)},
	)
}

func (t *Toolset) storageFailure(err error) map[string]any {
	t.logger.Error("tool hit a storage problem", "error", err)
	return failure("A storage problem prevented this request; please try again shortly.")
}

func success(message string, data any) map[string]any {
	out := map[string]any{"success": true, "message": message}
	if data != nil {
		out["data"] = data
	}
	return out
}

func failure(message string) map[string]any {
	return map[string]any{"success": false, "message": message}
}

// strArg pulls a non-blank string argument out of a tool call.
func strArg(args map[string]any, key string) (string, bool) {
	value, _ := args[key].(string)
	value = strings.TrimSpace(value)
	return value, value != ""
}

// jsonify round-trips v through JSON so tool responses only contain plain
// maps, slices and scalars, which is what the model transport accepts.
func jsonify(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
