package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

// Contacts manages the address book of a user. Every operation is scoped to
// ownerID; contacts of other users are reported as model.ErrNotFound.
type Contacts struct {
	store  model.ContactStore
	now    func() time.Time
	logger *logger.Logger
}

func NewContacts(store model.ContactStore, logger *logger.Logger) *Contacts {
	return &Contacts{store: store, now: time.Now, logger: logger}
}

func (s *Contacts) List(ctx context.Context, ownerID int64) ([]model.Contact, error) {
	contacts, err := s.store.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

func (s *Contacts) Get(ctx context.Context, ownerID, id int64) (model.Contact, error) {
	c, err := s.store.GetByID(ctx, ownerID, id)
	if err != nil {
		return model.Contact{}, wrapContactErr("failed to get contact", err)
	}
	return c, nil
}

// Search matches value exactly against first name, last name and email.
func (s *Contacts) Search(ctx context.Context, ownerID int64, value string) ([]model.Contact, error) {
	contacts, err := s.store.Search(ctx, ownerID, value)
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}
	return contacts, nil
}

// Birthdays returns contacts whose next birthday is within
// model.BirthdayWindowDays days from today, today included.
func (s *Contacts) Birthdays(ctx context.Context, ownerID int64) ([]model.Contact, error) {
	contacts, err := s.store.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	upcoming := make([]model.Contact, 0)
	for _, c := range contacts {
		if birthdayWithin(c.Birthday, today, model.BirthdayWindowDays) {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming, nil
}

func birthdayWithin(birthday, today time.Time, days int) bool {
	if birthday.IsZero() {
		return false
	}
	next := time.Date(today.Year(), birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(today.Year()+1, birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	}
	return !next.After(today.AddDate(0, 0, days))
}

func (s *Contacts) Create(ctx context.Context, ownerID int64, params model.ContactParams) (model.Contact, error) {
	c, err := s.store.Create(ctx, contactFromParams(ownerID, 0, params))
	if err != nil {
		s.logger.Error("Contacts service: failed to create contact",
			"owner_id", ownerID,
			"error", err.Error())
		return model.Contact{}, fmt.Errorf("failed to create contact: %w", err)
	}

	s.logger.Info("Contacts service: contact created",
		"owner_id", ownerID,
		"contact_id", c.ID)

	return c, nil
}

func (s *Contacts) Update(ctx context.Context, ownerID, id int64, params model.ContactParams) (model.Contact, error) {
	c, err := s.store.Update(ctx, contactFromParams(ownerID, id, params))
	if err != nil {
		return model.Contact{}, wrapContactErr("failed to update contact", err)
	}
	return c, nil
}

func (s *Contacts) Delete(ctx context.Context, ownerID, id int64) (model.Contact, error) {
	c, err := s.store.Delete(ctx, ownerID, id)
	if err != nil {
		return model.Contact{}, wrapContactErr("failed to delete contact", err)
	}

	s.logger.Info("Contacts service: contact deleted",
		"owner_id", ownerID,
		"contact_id", id)

	return c, nil
}

func contactFromParams(ownerID, id int64, p model.ContactParams) model.Contact {
	return model.Contact{
		ID:          id,
		OwnerID:     ownerID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email,
		Phone:       p.Phone,
		Birthday:    p.Birthday,
		Description: p.Description,
	}
}

func wrapContactErr(msg string, err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
