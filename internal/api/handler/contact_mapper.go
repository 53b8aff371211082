package handler

import (
	"fmt"
	"time"

	"github.com/DDjog/RestAPIz14/internal/core/domain"
	"github.com/DDjog/RestAPIz14/internal/core/ports"
)

func toContactFields(req contactRequest) (ports.ContactFields, error) {
	fields := ports.ContactFields{
		Firstname:  req.Firstname,
		Secondname: req.Secondname,
		Email:      req.Email,
		Telephone:  req.Telephone,
	}
	if req.Birthday != nil && *req.Birthday != "" {
		t, err := time.Parse(dateLayout, *req.Birthday)
		if err != nil {
			return ports.ContactFields{}, fmt.Errorf("birthday must be formatted as %s", dateLayout)
		}
		fields.Birthday = &t
	}
	return fields, nil
}

func toContactResponse(c *domain.Contact) contactResponse {
	resp := contactResponse{
		ID:         c.ID,
		Firstname:  c.Firstname,
		Secondname: c.Secondname,
		Email:      c.Email,
		Telephone:  c.Telephone,
		UserID:     c.UserID,
	}
	if c.Birthday != nil {
		s := c.Birthday.Format(dateLayout)
		resp.Birthday = &s
	}
	return resp
}

func toContactResponses(contacts []*domain.Contact) []contactResponse {
	out := make([]contactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, toContactResponse(c))
	}
	return out
}

func toContactNotesResponse(c *domain.Contact) contactNotesResponse {
	return contactNotesResponse{
		contactResponse: toContactResponse(c),
		Notes:           c.Notes,
	}
}
