package reference

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHospitalInfoDefaultsWhenMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "hospital_info.json"), nil)
	info := store.HospitalInfo(context.Background())
	assert.Equal(t, "HealthLine General Hospital", info.Name)
	assert.NotEmpty(t, info.Hours)
}

func TestHospitalInfoFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hospital_info.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "City Care", "address": "12 Mall Road", "phone": "042-999"}`), 0o644))

	info := NewStore(path, nil).HospitalInfo(context.Background())
	assert.Equal(t, "City Care", info.Name)
	assert.Equal(t, "12 Mall Road", info.Address)
	assert.Equal(t, "042-999", info.Phone)
	// unset fields keep the embedded defaults
	assert.NotEmpty(t, info.Hours)
}

func TestHospitalInfoMalformedFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hospital_info.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	info := NewStore(path, nil).HospitalInfo(context.Background())
	assert.Equal(t, "HealthLine General Hospital", info.Name)
}
