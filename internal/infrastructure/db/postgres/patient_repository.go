package postgres

import (
	"context"
	"fmt"

	"github.com/clinicore/account-system/internal/core/domain"
	"github.com/clinicore/account-system/internal/core/ports"
)

// PatientRepository persists the patient profile linked to a patient
// account. Only the back-reference to the owning user is of interest here.
type PatientRepository struct {
	db DB
}

func NewPatientRepository(db DB) *PatientRepository {
	return &PatientRepository{db: db}
}

var _ ports.PatientRepository = (*PatientRepository)(nil)

func (r *PatientRepository) Create(ctx context.Context, patient *domain.Patient) error {
	const query = `INSERT INTO patients (patient_no, name, gender, age, phone, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		patient.PatientNo, patient.Name, patient.Gender, patient.Age, patient.Phone, patient.UserID,
	).Scan(&patient.ID)
	if err != nil {
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}
