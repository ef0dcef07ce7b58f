package booking

import "encoding/json"

// Booking is one confirmed appointment in the ledger. AppointmentID is the
// sole handle for lookup and cancellation; TokenNumber is the patient's queue
// position, unique only within (doctor, date).
type Booking struct {
	AppointmentID string `json:"appointment_id"`
	TokenNumber   int    `json:"token_number"`
	PatientName   string `json:"patient_name"`
	PatientPhone  string `json:"patient_phone"`
	DoctorName    string `json:"doctor_name"`
	Specialty     string `json:"specialty"`
	BookingDate   string `json:"booking_date"`
	BookingTime   string `json:"booking_time"`
	Clinic        string `json:"clinic"`

	// extra holds fields present in a stored record that this version of the
	// code does not know about. They must survive a read-modify-write cycle.
	extra map[string]json.RawMessage
}

var knownBookingFields = map[string]bool{
	"appointment_id": true,
	"token_number":   true,
	"patient_name":   true,
	"patient_phone":  true,
	"doctor_name":    true,
	"specialty":      true,
	"booking_date":   true,
	"booking_time":   true,
	"clinic":         true,
}

// UnmarshalJSON decodes the known fields and retains any others verbatim.
func (b *Booking) UnmarshalJSON(data []byte) error {
	type plain Booking
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for field := range raw {
		if knownBookingFields[field] {
			delete(raw, field)
		}
	}

	*b = Booking(known)
	if len(raw) > 0 {
		b.extra = raw
	}
	return nil
}

// MarshalJSON emits the known fields merged with any retained unknown ones.
func (b Booking) MarshalJSON() ([]byte, error) {
	type plain Booking
	data, err := json.Marshal(plain(b))
	if err != nil {
		return nil, err
	}
	if len(b.extra) == 0 {
		return data, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for field, value := range b.extra {
		if _, ok := merged[field]; !ok {
			merged[field] = value
		}
	}
	return json.Marshal(merged)
}

// Clone returns a deep copy, including retained unknown fields.
func (b Booking) Clone() Booking {
	out := b
	if b.extra != nil {
		out.extra = make(map[string]json.RawMessage, len(b.extra))
		for field, value := range b.extra {
			out.extra[field] = append(json.RawMessage(nil), value...)
		}
	}
	return out
}
