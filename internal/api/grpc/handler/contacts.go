package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/contacts-server/internal/api/grpc/rpc"
	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/validate"
)

// ContactsService defines the address book operations of one owner.
type ContactsService interface {
	List(ctx context.Context, ownerID int64) ([]model.Contact, error)
	Get(ctx context.Context, ownerID, id int64) (model.Contact, error)
	Search(ctx context.Context, ownerID int64, value string) ([]model.Contact, error)
	Birthdays(ctx context.Context, ownerID int64) ([]model.Contact, error)
	Create(ctx context.Context, ownerID int64, params model.ContactParams) (model.Contact, error)
	Update(ctx context.Context, ownerID, id int64, params model.ContactParams) (model.Contact, error)
	Delete(ctx context.Context, ownerID, id int64) (model.Contact, error)
}

var _ rpc.ContactsServer = (*Contacts)(nil)

// Contacts handles contacts.v1.Contacts for the authenticated user.
type Contacts struct {
	contactsService ContactsService
	contextManager  model.ContextManager
	validator       *validate.Validator
	logger          *logger.Logger
}

func NewContacts(contactsService ContactsService, contextManager model.ContextManager, validator *validate.Validator, logger *logger.Logger) *Contacts {
	return &Contacts{
		contactsService: contactsService,
		contextManager:  contextManager,
		validator:       validator,
		logger:          logger,
	}
}

func (h *Contacts) ownerID(ctx context.Context) (int64, error) {
	user, ok := h.contextManager.GetUserFromContext(ctx)
	if !ok {
		return 0, status.Error(codes.Unauthenticated, model.ErrUnauthorized.Error())
	}
	return user.ID, nil
}

func (h *Contacts) List(ctx context.Context, _ *rpc.Empty) (*rpc.ContactsResponse, error) {
	ownerID, err := h.ownerID(ctx)
	if err != nil {
		return nil, err
	}

	contacts, err := h.contactsService.List(ctx, ownerID)
	if err != nil {
		h.logger.Error("Contacts handler: list failed",
			"owner_id", ownerID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return rpc.NewContactsResponse(contacts), nil
}

func (h *Contacts) Get(ctx context.Context, req *rpc.ContactIDRequest) (*rpc.Contact, error) {
	ownerID, err := h.ownerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.validator.Struct(req); err != nil {
		return nil, handleError(err)
	}

	c, err := h.contactsService.Get(ctx, ownerID, req.ID)
	if err != nil {
		return nil, handleError(err)
	}

	return rpc.NewContact(c), nil
}

func (h *Contacts) Search(ctx context.Context, req *rpc.SearchRequest) (*rpc.ContactsResponse, error) {
	ownerID, err := h.ownerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.validator.Struct(req); err != nil {
		return nil, handleError(err)
	}

	contacts, err := h.contactsService.Search(ctx, ownerID, req.Value)
	if err != nil {
		return nil, handleError(err)
	}

	return rpc.NewContactsResponse(contacts), nil
}

func (h *Contacts) Birthdays(ctx context.Context, _ *rpc.Empty) (*rpc.ContactsResponse, error) {
	ownerID, err := h.ownerID(ctx)
	if err != nil {
		return nil, err
	}

	contacts, err := h.contactsService.Birthdays(ctx, ownerID)
	if err != nil {
		return nil, handleError(err)
	}

	return rpc.NewContactsResponse(contacts), nil
}

func (h *Contacts) Create(ctx context.Context, req *rpc.CreateContactRequest) (*rpc.Contact, error) {
	ownerID, err := h.ownerID(ctx)
	if err != nil {
		return nil, err
	}
	params, err := h.params(req, req.ContactFields)
	if err != nil {
		return nil, err
	}

	c, err := h.contactsService.Create(ctx, ownerID, params)
	if err != nil {
		h.logger.Error("Contacts handler: create failed",
			"owner_id", ownerID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return rpc.NewContact(c), nil
}

func (h *Contacts) Update(ctx context.Context, req *rpc.UpdateContactRequest) (*rpc.Contact, error) {
	ownerID, err := h.ownerID(ctx)
	if err != nil {
		return nil, err
	}
	params, err := h.params(req, req.ContactFields)
	if err != nil {
		return nil, err
	}

	c, err := h.contactsService.Update(ctx, ownerID, req.ID, params)
	if err != nil {
		return nil, handleError(err)
	}

	return rpc.NewContact(c), nil
}

func (h *Contacts) Delete(ctx context.Context, req *rpc.ContactIDRequest) (*rpc.Contact, error) {
	ownerID, err := h.ownerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.validator.Struct(req); err != nil {
		return nil, handleError(err)
	}

	c, err := h.contactsService.Delete(ctx, ownerID, req.ID)
	if err != nil {
		return nil, handleError(err)
	}

	return rpc.NewContact(c), nil
}

// params validates req and converts its contact fields.
func (h *Contacts) params(req any, fields rpc.ContactFields) (model.ContactParams, error) {
	if err := h.validator.Struct(req); err != nil {
		return model.ContactParams{}, handleError(err)
	}
	params, err := fields.Params()
	if err != nil {
		return model.ContactParams{}, status.Error(codes.InvalidArgument, "birthday must be a date")
	}
	return params, nil
}
