package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"pratico/internal/onboarding/models"
	"pratico/pkg/platform/sentinel"
	"pratico/pkg/platform/tx"
)

// PostgresStore persists registrations in PostgreSQL. This store is pure
// I/O; status rules and pending-field logic belong to the service.
//
// Uniqueness of the active registration per phone is enforced by a partial
// unique index on (phone) WHERE NOT terminal, so the rule holds across
// process instances.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) q(ctx context.Context) querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

const registrationColumns = `
	id, phone, status, terminal, documents, pending,
	name, national_id, birth_date, license_number, license_uf,
	address, address_source, marital_status, email,
	license_validated, customer_ref, wallet_ref,
	contract_generated, contract_url, accepted, accepted_at, acceptance_origin,
	created_at, updated_at, last_document_at, active_since, event_seq, version`

func (s *PostgresStore) Create(ctx context.Context, reg *models.Registration) error {
	docs, pending, err := marshalCollections(reg)
	if err != nil {
		return err
	}

	reg.Version = 1
	_, err = s.q(ctx).ExecContext(ctx, `
		INSERT INTO registrations (`+registrationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29)
	`,
		reg.ID, reg.Phone, reg.Status, reg.Status.Terminal(), docs, pending,
		reg.Profile.Name, reg.Profile.NationalID, reg.Profile.BirthDate,
		reg.Profile.LicenseNumber, reg.Profile.LicenseUF,
		reg.Profile.Address, reg.Profile.AddressSource, reg.Profile.MaritalStatus, reg.Profile.Email,
		reg.LicenseValidated, reg.CustomerRef, reg.WalletRef,
		reg.ContractGenerated, reg.ContractURL, reg.Accepted, reg.AcceptedAt, reg.AcceptanceOrigin,
		reg.CreatedAt, reg.UpdatedAt, reg.LastDocumentAt, reg.ActiveSince, reg.EventSeq, reg.Version,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*models.Registration, error) {
	row := s.q(ctx).QueryRowContext(ctx, `
		SELECT `+registrationColumns+`
		FROM registrations
		WHERE id = $1
	`, id)
	reg, err := scanRegistration(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

func (s *PostgresStore) FindActiveByPhone(ctx context.Context, phone string) (*models.Registration, error) {
	row := s.q(ctx).QueryRowContext(ctx, `
		SELECT `+registrationColumns+`
		FROM registrations
		WHERE phone = $1 AND NOT terminal
		ORDER BY created_at DESC
		LIMIT 1
	`, phone)
	reg, err := scanRegistration(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find active registration: %w", err)
	}
	return reg, nil
}

func (s *PostgresStore) Update(ctx context.Context, reg *models.Registration) error {
	docs, pending, err := marshalCollections(reg)
	if err != nil {
		return err
	}

	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE registrations SET
			status = $2, terminal = $3, documents = $4, pending = $5,
			name = $6, national_id = $7, birth_date = $8, license_number = $9, license_uf = $10,
			address = $11, address_source = $12, marital_status = $13, email = $14,
			license_validated = $15, customer_ref = $16, wallet_ref = $17,
			contract_generated = $18, contract_url = $19, accepted = $20, accepted_at = $21, acceptance_origin = $22,
			updated_at = $23, last_document_at = $24, active_since = $25, event_seq = $26,
			version = version + 1
		WHERE id = $1 AND version = $27
	`,
		reg.ID, reg.Status, reg.Status.Terminal(), docs, pending,
		reg.Profile.Name, reg.Profile.NationalID, reg.Profile.BirthDate,
		reg.Profile.LicenseNumber, reg.Profile.LicenseUF,
		reg.Profile.Address, reg.Profile.AddressSource, reg.Profile.MaritalStatus, reg.Profile.Email,
		reg.LicenseValidated, reg.CustomerRef, reg.WalletRef,
		reg.ContractGenerated, reg.ContractURL, reg.Accepted, reg.AcceptedAt, reg.AcceptanceOrigin,
		reg.UpdatedAt, reg.LastDocumentAt, reg.ActiveSince, reg.EventSeq,
		reg.Version,
	)
	if err != nil {
		return fmt.Errorf("update registration: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update registration: %w", err)
	}
	if affected == 0 {
		if _, getErr := s.Get(ctx, reg.ID); getErr != nil {
			return getErr
		}
		return sentinel.ErrConflict
	}
	reg.Version++
	return nil
}

func marshalCollections(reg *models.Registration) ([]byte, []byte, error) {
	docs, err := json.Marshal(reg.Documents)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal documents: %w", err)
	}
	pending, err := json.Marshal(reg.Pending)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal pending: %w", err)
	}
	return docs, pending, nil
}

func scanRegistration(row *sql.Row) (*models.Registration, error) {
	var (
		reg      models.Registration
		terminal bool
		docs     []byte
		pending  []byte

		acceptedAt, lastDocumentAt, activeSince sql.NullTime
	)
	err := row.Scan(
		&reg.ID, &reg.Phone, &reg.Status, &terminal, &docs, &pending,
		&reg.Profile.Name, &reg.Profile.NationalID, &reg.Profile.BirthDate,
		&reg.Profile.LicenseNumber, &reg.Profile.LicenseUF,
		&reg.Profile.Address, &reg.Profile.AddressSource, &reg.Profile.MaritalStatus, &reg.Profile.Email,
		&reg.LicenseValidated, &reg.CustomerRef, &reg.WalletRef,
		&reg.ContractGenerated, &reg.ContractURL, &reg.Accepted, &acceptedAt, &reg.AcceptanceOrigin,
		&reg.CreatedAt, &reg.UpdatedAt, &lastDocumentAt, &activeSince, &reg.EventSeq, &reg.Version,
	)
	if err != nil {
		return nil, err
	}

	reg.Documents = make(map[models.DocSlot]models.DocumentRef)
	if len(docs) > 0 {
		if err := json.Unmarshal(docs, &reg.Documents); err != nil {
			return nil, fmt.Errorf("unmarshal documents: %w", err)
		}
	}
	if len(pending) > 0 {
		if err := json.Unmarshal(pending, &reg.Pending); err != nil {
			return nil, fmt.Errorf("unmarshal pending: %w", err)
		}
	}
	reg.AcceptedAt = timePtr(acceptedAt)
	reg.LastDocumentAt = timePtr(lastDocumentAt)
	reg.ActiveSince = timePtr(activeSince)
	return &reg, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
