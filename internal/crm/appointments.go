package crm

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DealershipLocation is the fixed location used on every confirmation.
const DealershipLocation = "DealerDesk Premium Dealership, 123 Main St"

// Appointment is a test-drive booking.
type Appointment struct {
	ConfirmationNumber string    `json:"confirmation_number"`
	CustomerName       string    `json:"customer_name"`
	VehicleModel       string    `json:"vehicle_model"`
	DateTime           string    `json:"date_time"`
	ContactInfo        string    `json:"contact_info"`
	CreatedAt          time.Time `json:"created_at"`
	Status             string    `json:"status"`
	Location           string    `json:"location"`
}

// AppointmentStore appends appointments to a flat JSON file.
type AppointmentStore struct {
	mu   sync.Mutex
	path string
}

// NewAppointmentStore creates a store writing to path.
func NewAppointmentStore(path string) *AppointmentStore {
	return &AppointmentStore{path: path}
}

// NewConfirmationNumber generates a TD- code: five uppercase alphanumerics
// taken from a random UUID.
func NewConfirmationNumber() string {
	return "TD-" + strings.ToUpper(uuid.NewString()[:5])
}

// Book appends a new appointment and returns it with its confirmation
// number and fixed location filled in.
func (s *AppointmentStore) Book(appt Appointment) (Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appointments, err := loadJSON[Appointment](s.path)
	if err != nil {
		return Appointment{}, err
	}

	if appt.ConfirmationNumber == "" {
		appt.ConfirmationNumber = NewConfirmationNumber()
	}
	if appt.CustomerName == "" {
		appt.CustomerName = "Valued Customer"
	}
	if appt.VehicleModel == "" {
		appt.VehicleModel = "Selected Vehicle"
	}
	if appt.DateTime == "" {
		appt.DateTime = "To be confirmed"
	}
	if appt.CreatedAt.IsZero() {
		appt.CreatedAt = time.Now().UTC()
	}
	appt.Status = "pending"
	appt.Location = DealershipLocation

	appointments = append(appointments, appt)
	if err := saveJSON(s.path, appointments); err != nil {
		return Appointment{}, err
	}
	return appt, nil
}

// All returns every stored appointment.
func (s *AppointmentStore) All() ([]Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadJSON[Appointment](s.path)
}
