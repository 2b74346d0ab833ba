package reeve

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// PersonService handles person management operations.
type PersonService struct {
	client *Client
}

// PersonListOptions are the optional pagination parameters for List.
// Nil fields are omitted from the request entirely; the API treats an
// absent parameter differently from a zero value.
type PersonListOptions struct {
	Page   *int
	Amount *int
}

// PersonParams are the optional fields for Add and Edit. Nil fields are
// left out of the request body, giving partial-update semantics.
type PersonParams struct {
	Firstname *string
	Lastname  *string
}

// List returns the enrolled persons. opts may be nil.
func (s *PersonService) List(ctx context.Context, opts *PersonListOptions) (*APIResponse, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Page != nil {
			params.Set("Page", strconv.Itoa(*opts.Page))
		}
		if opts.Amount != nil {
			params.Set("Amount", strconv.Itoa(*opts.Amount))
		}
	}
	return s.client.Get(ctx, "/Person/list", params)
}

// Add creates a new person. params may be nil.
func (s *PersonService) Add(ctx context.Context, params *PersonParams) (*APIResponse, error) {
	return s.client.Post(ctx, "/Person/add", personBody(nil, params))
}

// Edit updates a person. Only the fields set in params are sent.
func (s *PersonService) Edit(ctx context.Context, personID int, params *PersonParams) (*APIResponse, error) {
	body := personBody(map[string]any{"id": personID}, params)
	return s.client.Put(ctx, fmt.Sprintf("/Person/edit/%d", personID), body)
}

// Delete removes a person by id.
func (s *PersonService) Delete(ctx context.Context, personID int) (*APIResponse, error) {
	return s.client.Post(ctx, fmt.Sprintf("/Person/delete/%d", personID), nil)
}

// personBody builds the request body from an optional base map plus the
// provided fields. Unset fields are omitted, never sent as null.
func personBody(base map[string]any, params *PersonParams) map[string]any {
	body := map[string]any{}
	for k, v := range base {
		body[k] = v
	}
	if params != nil {
		if params.Firstname != nil {
			body["firstname"] = *params.Firstname
		}
		if params.Lastname != nil {
			body["lastname"] = *params.Lastname
		}
	}
	return body
}
