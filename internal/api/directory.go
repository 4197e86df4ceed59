package api

import (
	"context"
	"net/http"

	"github.com/taskflow/taskflow/internal/domain"
)

// UsersAPI is the typed client for the /users resource
type UsersAPI struct {
	c *Client
}

// GetAll fetches every assignable user
func (a *UsersAPI) GetAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := a.c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, &domain.APIError{Op: "list", Entity: "user", Err: err}
	}
	return users, nil
}

// CustomersAPI is the typed client for the /customers resource
type CustomersAPI struct {
	c *Client
}

// GetAll fetches every customer organization
func (a *CustomersAPI) GetAll(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	if err := a.c.do(ctx, http.MethodGet, "/customers", nil, &customers); err != nil {
		return nil, &domain.APIError{Op: "list", Entity: "customer", Err: err}
	}
	return customers, nil
}

// Create persists a new customer and returns the stored record
func (a *CustomersAPI) Create(ctx context.Context, cu domain.Customer) (domain.Customer, error) {
	var created domain.Customer
	if err := a.c.do(ctx, http.MethodPost, "/customers", cu, &created); err != nil {
		return domain.Customer{}, &domain.APIError{Op: "create", Entity: "customer", Err: err}
	}
	return created, nil
}

// Delete removes one customer
func (a *CustomersAPI) Delete(ctx context.Context, id string) error {
	if err := a.c.do(ctx, http.MethodDelete, "/customers/"+id, nil, nil); err != nil {
		return &domain.APIError{Op: "delete", Entity: "customer", ID: id, Err: err}
	}
	return nil
}

// ContactsAPI is the typed client for the /contacts resource
type ContactsAPI struct {
	c *Client
}

// GetAll fetches every contact
func (a *ContactsAPI) GetAll(ctx context.Context) ([]domain.Contact, error) {
	var contacts []domain.Contact
	if err := a.c.do(ctx, http.MethodGet, "/contacts", nil, &contacts); err != nil {
		return nil, &domain.APIError{Op: "list", Entity: "contact", Err: err}
	}
	return contacts, nil
}

// Create persists a new contact and returns the stored record
func (a *ContactsAPI) Create(ctx context.Context, ct domain.Contact) (domain.Contact, error) {
	var created domain.Contact
	if err := a.c.do(ctx, http.MethodPost, "/contacts", ct, &created); err != nil {
		return domain.Contact{}, &domain.APIError{Op: "create", Entity: "contact", Err: err}
	}
	return created, nil
}

// Delete removes one contact
func (a *ContactsAPI) Delete(ctx context.Context, id string) error {
	if err := a.c.do(ctx, http.MethodDelete, "/contacts/"+id, nil, nil); err != nil {
		return &domain.APIError{Op: "delete", Entity: "contact", ID: id, Err: err}
	}
	return nil
}
