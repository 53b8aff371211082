package handler

// dateLayout is the wire format for the optional birthday field.
const dateLayout = "2006-01-02"

// contactRequest is the payload for create and full-update operations.
// Notes is deliberately absent: notes travel only through the notes endpoint.
type contactRequest struct {
	Firstname  string  `json:"firstname" validate:"required,max=50"`
	Secondname string  `json:"secondname" validate:"required,max=50"`
	Email      string  `json:"email" validate:"required,max=50"`
	Telephone  int64   `json:"telephone" validate:"required"`
	Birthday   *string `json:"birthday,omitempty"`
}

type notesRequest struct {
	Notes string `json:"notes" validate:"required"`
}

type contactResponse struct {
	ID         int64   `json:"id"`
	Firstname  string  `json:"firstname"`
	Secondname string  `json:"secondname"`
	Email      string  `json:"email"`
	Telephone  int64   `json:"telephone"`
	Birthday   *string `json:"birthday"`
	UserID     int64   `json:"user_id"`
}

// contactNotesResponse is the notes-endpoint view: the same contact with the
// notes field authoritative.
type contactNotesResponse struct {
	contactResponse
	Notes *string `json:"notes"`
}
