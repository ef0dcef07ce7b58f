package schedule

import "strings"

// onLeaveSentinel marks catalog rows that are never bookable. The upstream
// schedule export writes it into the time column instead of a dedicated flag.
const onLeaveSentinel = "on leave"

// Entry is one row of the weekly schedule catalog. A doctor may appear in
// several rows (different clinics or time blocks); callers must not collapse
// them except through UniqueDoctors.
type Entry struct {
	Doctor    string   `json:"doctor"`
	Specialty string   `json:"specialty"`
	Clinic    string   `json:"clinic"`
	Days      []string `json:"days"`
	Time      string   `json:"time"`
}

// OnLeave reports whether the row's time block carries the "on leave"
// sentinel, in any casing.
func (e Entry) OnLeave() bool {
	return strings.Contains(strings.ToLower(e.Time), onLeaveSentinel)
}

// HasDay reports whether the row recurs on the given weekday name.
func (e Entry) HasDay(weekday string) bool {
	for _, d := range e.Days {
		if strings.EqualFold(d, weekday) {
			return true
		}
	}
	return false
}

// AbsenceSet maps a doctor's display name, exactly as it appears in the
// catalog, to the ISO dates on which their recurring slots are suspended.
// A doctor with no entry is available on every scheduled day.
type AbsenceSet map[string][]string

// Contains reports whether the doctor is marked absent on the given ISO date.
func (a AbsenceSet) Contains(doctor, date string) bool {
	for _, d := range a[doctor] {
		if d == date {
			return true
		}
	}
	return false
}

// Slot is a bookable (doctor, date, time-block) opportunity. Slots are
// computed fresh on every availability query and never persisted.
type Slot struct {
	Doctor    string `json:"doctor"`
	Date      string `json:"date"`
	Day       string `json:"day"`
	Time      string `json:"time"`
	Clinic    string `json:"clinic"`
	Remaining int    `json:"remaining"`
}

// DoctorSummary is the simplified one-row-per-doctor view used for
// disambiguation prompts.
type DoctorSummary struct {
	Doctor    string `json:"doctor"`
	Specialty string `json:"specialty"`
}
