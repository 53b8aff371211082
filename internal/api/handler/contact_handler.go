package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/DDjog/RestAPIz14/internal/api/metrics"
	"github.com/DDjog/RestAPIz14/internal/core/domain"
	"github.com/DDjog/RestAPIz14/internal/core/ports"
)

const defaultListLimit = 100

// ContactHandler handles HTTP requests for contact operations. Every route
// runs behind the Auth middleware; the resolved account scopes each call.
type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// List handles GET /api/contacts.
//
// @Summary      List own contacts
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Number of contacts to skip"
// @Param        limit  query     int  false  "Maximum contacts to return (default 100)"
// @Success      200    {array}   contactResponse
// @Failure      401    {object}  map[string]string
// @Router       /api/contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit := defaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	contacts, err := h.service.List(c.Request().Context(), user.ID, skip, limit)
	if err != nil {
		return err
	}

	metrics.ContactQueriesTotal.WithLabelValues("list").Inc()
	return c.JSON(http.StatusOK, toContactResponses(contacts))
}

// Get handles GET /api/contacts/:id.
//
// @Summary      Get a contact by id
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Contact id"
// @Success      200  {object}  contactResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/contacts/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	contactID, err := pathID(c)
	if err != nil {
		return err
	}

	contact, err := h.service.GetByID(c.Request().Context(), user.ID, contactID)
	if err != nil {
		return err
	}

	metrics.ContactQueriesTotal.WithLabelValues("get").Inc()
	return c.JSON(http.StatusOK, toContactResponse(contact))
}

// GetNotes handles GET /api/contacts/note/:id.
//
// @Summary      Get a contact's notes
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Contact id"
// @Success      200  {object}  contactNotesResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/contacts/note/{id} [get]
func (h *ContactHandler) GetNotes(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	contactID, err := pathID(c)
	if err != nil {
		return err
	}

	contact, err := h.service.GetNotes(c.Request().Context(), user.ID, contactID)
	if err != nil {
		return err
	}

	metrics.ContactQueriesTotal.WithLabelValues("notes").Inc()
	return c.JSON(http.StatusOK, toContactNotesResponse(contact))
}

// BirthdayAhead handles GET /api/contacts/birthday_ahead/:days.
//
// @Summary      Contacts with a birthday in the next N days
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        days  path      int  true  "Horizon in days"
// @Success      200   {array}   contactResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/contacts/birthday_ahead/{days} [get]
func (h *ContactHandler) BirthdayAhead(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	days, err := strconv.Atoi(c.Param("days"))
	if err != nil || days < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "days must be a non-negative integer")
	}

	contacts, err := h.service.BirthdayAhead(c.Request().Context(), user.ID, days)
	if err != nil {
		return err
	}

	metrics.ContactQueriesTotal.WithLabelValues("birthday_ahead").Inc()
	return c.JSON(http.StatusOK, toContactResponses(contacts))
}

// ByEmail handles GET /api/contacts/email/:email.
//
// @Summary      Contacts with an exact email match
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Email (exact, case-sensitive)"
// @Success      200    {array}   contactResponse
// @Failure      404    {object}  map[string]string
// @Router       /api/contacts/email/{email} [get]
func (h *ContactHandler) ByEmail(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	contacts, err := h.service.ByEmail(c.Request().Context(), user.ID, c.Param("email"))
	if err != nil {
		return err
	}
	metrics.ContactQueriesTotal.WithLabelValues("by_email").Inc()
	return respondFiltered(c, contacts)
}

// ByFirstname handles GET /api/contacts/firstname/:name.
//
// @Summary      Contacts whose first name contains a substring
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "First name fragment (case-insensitive)"
// @Success      200   {array}   contactResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/contacts/firstname/{name} [get]
func (h *ContactHandler) ByFirstname(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	contacts, err := h.service.ByFirstname(c.Request().Context(), user.ID, c.Param("name"))
	if err != nil {
		return err
	}
	metrics.ContactQueriesTotal.WithLabelValues("by_firstname").Inc()
	return respondFiltered(c, contacts)
}

// BySecondname handles GET /api/contacts/secondname/:name.
//
// @Summary      Contacts whose second name contains a substring
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Second name fragment (case-insensitive)"
// @Success      200   {array}   contactResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/contacts/secondname/{name} [get]
func (h *ContactHandler) BySecondname(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	contacts, err := h.service.BySecondname(c.Request().Context(), user.ID, c.Param("name"))
	if err != nil {
		return err
	}
	metrics.ContactQueriesTotal.WithLabelValues("by_secondname").Inc()
	return respondFiltered(c, contacts)
}

// ByFirstAndSecondname handles GET /api/contacts/firstandsecondname/:first/:second.
//
// @Summary      Contacts matching both name fragments
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        first   path      string  true  "First name fragment"
// @Param        second  path      string  true  "Second name fragment"
// @Success      200     {array}   contactResponse
// @Failure      404     {object}  map[string]string
// @Router       /api/contacts/firstandsecondname/{first}/{second} [get]
func (h *ContactHandler) ByFirstAndSecondname(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	contacts, err := h.service.ByFirstAndSecondname(c.Request().Context(), user.ID,
		c.Param("first"), c.Param("second"))
	if err != nil {
		return err
	}
	metrics.ContactQueriesTotal.WithLabelValues("by_first_and_secondname").Inc()
	return respondFiltered(c, contacts)
}

// Create handles POST /api/contacts.
//
// @Summary      Create a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      contactRequest  true  "Contact fields"
// @Success      201   {object}  contactResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/contacts [post]
func (h *ContactHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	fields, err := h.bindFields(c)
	if err != nil {
		return err
	}

	contact, err := h.service.Create(c.Request().Context(), user.ID, fields)
	if err != nil {
		return err
	}

	metrics.ContactsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toContactResponse(contact))
}

// Update handles PUT /api/contacts/:id.
//
// @Summary      Replace a contact's fields
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Contact id"
// @Param        body  body      contactRequest  true  "Replacement fields"
// @Success      200   {object}  contactResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/contacts/{id} [put]
func (h *ContactHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	contactID, err := pathID(c)
	if err != nil {
		return err
	}

	fields, err := h.bindFields(c)
	if err != nil {
		return err
	}

	contact, err := h.service.Update(c.Request().Context(), user.ID, contactID, fields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toContactResponse(contact))
}

// UpdateNotes handles PUT /api/contacts/note/:id.
//
// @Summary      Replace a contact's notes
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "Contact id"
// @Param        body  body      notesRequest  true  "New notes"
// @Success      200   {object}  contactNotesResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/contacts/note/{id} [put]
func (h *ContactHandler) UpdateNotes(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	contactID, err := pathID(c)
	if err != nil {
		return err
	}

	var req notesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	contact, err := h.service.UpdateNotes(c.Request().Context(), user.ID, contactID, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toContactNotesResponse(contact))
}

// Remove handles DELETE /api/contacts/:id.
//
// @Summary      Delete a contact
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Contact id"
// @Success      200  {object}  contactResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/contacts/{id} [delete]
func (h *ContactHandler) Remove(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	contactID, err := pathID(c)
	if err != nil {
		return err
	}

	contact, err := h.service.Remove(c.Request().Context(), user.ID, contactID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toContactResponse(contact))
}

func (h *ContactHandler) bindFields(c echo.Context) (ports.ContactFields, error) {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return ports.ContactFields{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.ContactFields{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	fields, err := toContactFields(req)
	if err != nil {
		return ports.ContactFields{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return fields, nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}
	return id, nil
}

// respondFiltered renders a filter result the way the contacts API always
// has: an empty match set on the name and email filters is a 404, not an
// empty list.
func respondFiltered(c echo.Context, contacts []*domain.Contact) error {
	if len(contacts) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "contact or contacts not found")
	}
	return c.JSON(http.StatusOK, toContactResponses(contacts))
}
