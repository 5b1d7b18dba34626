package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/contacts-server/internal/model"
)

var _ model.ContactStore = (*ContactRepository)(nil)

const contactColumns = `id, user_id, firstname, lastname, email, phone, birthday, description, created_at, updated_at`

type ContactRepository struct {
	db DB
}

func NewContactRepository(db DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func scanContact(row pgx.Row) (model.Contact, error) {
	var c model.Contact
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.Birthday, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *ContactRepository) collect(rows pgx.Rows) ([]model.Contact, error) {
	defer rows.Close()

	contacts := make([]model.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}

	return contacts, nil
}

func (r *ContactRepository) List(ctx context.Context, ownerID int64) ([]model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	return r.collect(rows)
}

func (r *ContactRepository) GetByID(ctx context.Context, ownerID, id int64) (model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1 AND user_id = $2`

	c, err := scanContact(r.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Contact{}, model.ErrNotFound
		}
		return model.Contact{}, fmt.Errorf("failed to get contact by id: %w", err)
	}

	return c, nil
}

// Search returns contacts whose first name, last name or email equals value.
func (r *ContactRepository) Search(ctx context.Context, ownerID int64, value string) ([]model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts
			  WHERE user_id = $1 AND (firstname = $2 OR lastname = $2 OR email = $2)
			  ORDER BY id`

	rows, err := r.db.Query(ctx, query, ownerID, value)
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}

	return r.collect(rows)
}

func (r *ContactRepository) Create(ctx context.Context, contact model.Contact) (model.Contact, error) {
	query := `INSERT INTO contacts (user_id, firstname, lastname, email, phone, birthday, description)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + contactColumns

	saved, err := scanContact(r.db.QueryRow(ctx, query,
		contact.OwnerID, contact.FirstName, contact.LastName, contact.Email,
		contact.Phone, contact.Birthday, contact.Description,
	))
	if err != nil {
		return model.Contact{}, fmt.Errorf("failed to create contact: %w", err)
	}

	return saved, nil
}

func (r *ContactRepository) Update(ctx context.Context, contact model.Contact) (model.Contact, error) {
	query := `UPDATE contacts
			  SET firstname = $3, lastname = $4, email = $5, phone = $6, birthday = $7, description = $8, updated_at = NOW()
			  WHERE id = $1 AND user_id = $2
			  RETURNING ` + contactColumns

	saved, err := scanContact(r.db.QueryRow(ctx, query,
		contact.ID, contact.OwnerID, contact.FirstName, contact.LastName, contact.Email,
		contact.Phone, contact.Birthday, contact.Description,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Contact{}, model.ErrNotFound
		}
		return model.Contact{}, fmt.Errorf("failed to update contact: %w", err)
	}

	return saved, nil
}

func (r *ContactRepository) Delete(ctx context.Context, ownerID, id int64) (model.Contact, error) {
	query := `DELETE FROM contacts WHERE id = $1 AND user_id = $2 RETURNING ` + contactColumns

	removed, err := scanContact(r.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Contact{}, model.ErrNotFound
		}
		return model.Contact{}, fmt.Errorf("failed to delete contact: %w", err)
	}

	return removed, nil
}
