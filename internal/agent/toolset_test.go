package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultData(t *testing.T, res ToolResult) map[string]any {
	t.Helper()
	data, ok := res.Response["data"].(map[string]any)
	require.True(t, ok, "result carries no data: %v", res.Response)
	return data
}

func TestToolsetFindDoctor(t *testing.T) {
	toolset, _, _ := newTestToolset()

	res := toolset.Execute(context.Background(), ToolCall{
		Name: ToolFindDoctor,
		Args: map[string]any{"doctor_name": "ali mehdi"},
	})

	assert.Equal(t, ToolFindDoctor, res.Name)
	assert.Equal(t, true, res.Response["success"])
	data := resultData(t, res)
	schedules, ok := data["schedules"].([]any)
	require.True(t, ok)
	assert.Len(t, schedules, 2, "both schedule rows for the doctor should come back")
	doctors, ok := data["doctors"].([]any)
	require.True(t, ok)
	assert.Len(t, doctors, 1)
}

func TestToolsetFindDoctorNoMatch(t *testing.T) {
	toolset, _, _ := newTestToolset()

	res := toolset.Execute(context.Background(), ToolCall{
		Name: ToolFindDoctor,
		Args: map[string]any{"doctor_name": "nobody atall"},
	})

	// An empty match is a valid answer, not a failure.
	assert.Equal(t, true, res.Response["success"])
	assert.Contains(t, res.Response["message"], "No doctor matching")
}

func TestToolsetFindDoctorMissingArg(t *testing.T) {
	toolset, _, _ := newTestToolset()

	res := toolset.Execute(context.Background(), ToolCall{Name: ToolFindDoctor})

	assert.Equal(t, false, res.Response["success"])
	assert.Contains(t, res.Response["message"], "doctor_name is required")
}

func TestToolsetListBySpecialty(t *testing.T) {
	toolset, _, _ := newTestToolset()

	res := toolset.Execute(context.Background(), ToolCall{
		Name: ToolListBySpecialty,
		Args: map[string]any{"specialty": "internal medicine"},
	})

	assert.Equal(t, true, res.Response["success"])
	doctors := resultData(t, res)["doctors"].([]any)
	require.Len(t, doctors, 1)
	doctor := doctors[0].(map[string]any)
	assert.Equal(t, "Prof Sara Khan", doctor["doctor"])
}

func TestToolsetAvailableSlots(t *testing.T) {
	toolset, _, _ := newTestToolset()

	res := toolset.Execute(context.Background(), ToolCall{
		Name: ToolAvailableSlots,
		Args: map[string]any{"doctor_name": "ali mehdi"},
	})

	assert.Equal(t, true, res.Response["success"])
	slots := resultData(t, res)["slots"].([]any)
	// Monday and Thursday clinics over a 14 day window.
	assert.Len(t, slots, 4)
	first := slots[0].(map[string]any)
	assert.Equal(t, "2026-09-07", first["date"])
}

func TestToolsetBookThenCancel(t *testing.T) {
	toolset, _, _ := newTestToolset()
	ctx := context.Background()

	res := toolset.Execute(ctx, ToolCall{
		Name: ToolBook,
		Args: map[string]any{
			"doctor_name":   "Dr. Ali Mehdi",
			"booking_date":  "2026-09-07",
			"booking_time":  "10AM-12PM",
			"patient_name":  "Hamza Iqbal",
			"patient_phone": "0300-1234567",
		},
	})
	require.Equal(t, true, res.Response["success"], "book failed: %v", res.Response["message"])
	booked := resultData(t, res)["booking"].(map[string]any)
	id := booked["appointment_id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, float64(1), booked["token_number"])

	res = toolset.Execute(ctx, ToolCall{
		Name: ToolFindByPhone,
		Args: map[string]any{"patient_phone": "0300-1234567"},
	})
	require.Equal(t, true, res.Response["success"])
	assert.Len(t, resultData(t, res)["appointments"].([]any), 1)

	res = toolset.Execute(ctx, ToolCall{
		Name: ToolCancel,
		Args: map[string]any{"appointment_id": id},
	})
	require.Equal(t, true, res.Response["success"])

	res = toolset.Execute(ctx, ToolCall{
		Name: ToolGetAppointment,
		Args: map[string]any{"appointment_id": id},
	})
	require.Equal(t, true, res.Response["success"])
	assert.Empty(t, resultData(t, res)["appointments"].([]any))
}

func TestToolsetBookWrongSlotFails(t *testing.T) {
	toolset, _, _ := newTestToolset()

	res := toolset.Execute(context.Background(), ToolCall{
		Name: ToolBook,
		Args: map[string]any{
			"doctor_name":   "Dr. Ali Mehdi",
			"booking_date":  "2026-09-08", // a Tuesday, no clinic
			"booking_time":  "10AM-12PM",
			"patient_name":  "Hamza Iqbal",
			"patient_phone": "0300-1234567",
		},
	})

	assert.Equal(t, false, res.Response["success"])
	assert.Contains(t, res.Response["message"], "not available")
}

func TestToolsetBookMissingField(t *testing.T) {
	toolset, _, _ := newTestToolset()

	res := toolset.Execute(context.Background(), ToolCall{
		Name: ToolBook,
		Args: map[string]any{
			"doctor_name":  "Dr. Ali Mehdi",
			"booking_date": "2026-09-07",
			"booking_time": "10AM-12PM",
			"patient_name": "Hamza Iqbal",
		},
	})

	assert.Equal(t, false, res.Response["success"])
	assert.Contains(t, res.Response["message"], "patient_phone is required")
}

func TestToolsetCancelUnknownAppointment(t *testing.T) {
	toolset, _, _ := newTestToolset()

	res := toolset.Execute(context.Background(), ToolCall{
		Name: ToolCancel,
		Args: map[string]any{"appointment_id": "no-such-id"},
	})

	assert.Equal(t, false, res.Response["success"])
	assert.Contains(t, res.Response["message"], "No appointment exists")
}

func TestToolsetHospitalInfo(t *testing.T) {
	toolset, _, _ := newTestToolset()

	res := toolset.Execute(context.Background(), ToolCall{Name: ToolHospitalInfo})

	assert.Equal(t, true, res.Response["success"])
	info := resultData(t, res)["hospital"].(map[string]any)
	assert.Equal(t, "HealthLine General Hospital", info["name"])
}

func TestToolsetListSpecialties(t *testing.T) {
	toolset, _, _ := newTestToolset()

	res := toolset.Execute(context.Background(), ToolCall{Name: ToolListSpecialties})

	assert.Equal(t, true, res.Response["success"])
	specialties := resultData(t, res)["specialties"].([]any)
	assert.Len(t, specialties, 2)
}

func TestToolsetUnknownTool(t *testing.T) {
	toolset, _, _ := newTestToolset()

	res := toolset.Execute(context.Background(), ToolCall{Name: "time_travel"})

	assert.Equal(t, false, res.Response["success"])
	assert.Contains(t, res.Response["message"], "unknown tool")
}
