package crm

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadStore_SequentialIDs(t *testing.T) {
	store := NewLeadStore(filepath.Join(t.TempDir(), "crm_leads.json"))

	first, err := store.Create(Lead{CustomerName: "Ada", Interest: "suv"})
	require.NoError(t, err)
	second, err := store.Create(Lead{CustomerName: "Grace", Interest: "truck"})
	require.NoError(t, err)

	assert.Equal(t, "LEAD-1001", first.LeadID)
	assert.Equal(t, "LEAD-1002", second.LeadID)
	assert.Equal(t, "new", first.Status)
	assert.Equal(t, "Not specified", first.Budget)
	assert.False(t, first.CreatedAt.IsZero())

	leads, err := store.All()
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "Ada", leads[0].CustomerName)
}

func TestLeadStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm_leads.json")

	_, err := NewLeadStore(path).Create(Lead{CustomerName: "Ada"})
	require.NoError(t, err)

	lead, err := NewLeadStore(path).Create(Lead{CustomerName: "Grace"})
	require.NoError(t, err)
	assert.Equal(t, "LEAD-1002", lead.LeadID, "numbering continues from the table length")
}

func TestNewConfirmationNumber_Pattern(t *testing.T) {
	pattern := regexp.MustCompile(`^TD-[A-Z0-9]{5}$`)
	for i := 0; i < 50; i++ {
		code := NewConfirmationNumber()
		assert.Regexp(t, pattern, code)
	}
}

func TestAppointmentStore_BookFillsDefaults(t *testing.T) {
	store := NewAppointmentStore(filepath.Join(t.TempDir(), "appointments.json"))

	appt, err := store.Book(Appointment{})
	require.NoError(t, err)

	assert.Regexp(t, `^TD-[A-Z0-9]{5}$`, appt.ConfirmationNumber)
	assert.Equal(t, "Valued Customer", appt.CustomerName)
	assert.Equal(t, "Selected Vehicle", appt.VehicleModel)
	assert.Equal(t, "To be confirmed", appt.DateTime)
	assert.Equal(t, "pending", appt.Status)
	assert.Equal(t, DealershipLocation, appt.Location)

	all, err := store.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAppointmentStore_KeepsProvidedFields(t *testing.T) {
	store := NewAppointmentStore(filepath.Join(t.TempDir(), "appointments.json"))

	appt, err := store.Book(Appointment{
		CustomerName: "Ada",
		VehicleModel: "Honda CR-V",
		DateTime:     "Saturday at 10:30 AM",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", appt.CustomerName)
	assert.Equal(t, "Honda CR-V", appt.VehicleModel)
	assert.Equal(t, "Saturday at 10:30 AM", appt.DateTime)
}
