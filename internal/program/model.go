package program

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

// CoverField is the only binary field of a Program.
const CoverField = "cover"

// ErrUnknownBlob is returned when a blob is staged under a name Program has no field for.
var ErrUnknownBlob = errors.New("unknown binary field")

// User is the owner reference of a Program. Only the id travels to the
// backend; the login is the display value.
type User struct {
	ID    int64  `json:"id" yaml:"id"`
	Login string `json:"login,omitempty" yaml:"login,omitempty"`
}

// Program is a single Program record as exchanged with the backend.
//
// The validate tags carry the rules the create/edit form enforces before a
// write is issued. StartDate and EndDate are optional in stored records but
// required by the form.
type Program struct {
	ID               int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Cover            []byte `json:"cover,omitempty" yaml:"-" validate:"gt=0"`
	CoverContentType string `json:"coverContentType,omitempty" yaml:"coverContentType,omitempty"`
	Title            string `json:"title,omitempty" yaml:"title" validate:"required,min=5,max=30"`
	Description      string `json:"description,omitempty" yaml:"description" validate:"required,max=300"`
	StartDate        string `json:"startDate,omitempty" yaml:"startDate,omitempty" validate:"required,datetime=2006-01-02"`
	EndDate          string `json:"endDate,omitempty" yaml:"endDate,omitempty" validate:"required,datetime=2006-01-02"`
	Tags             string `json:"tags,omitempty" yaml:"tags,omitempty" validate:"omitempty,min=3,max=30"`
	User             *User  `json:"user,omitempty" yaml:"user,omitempty"`
}

// Empty returns the default shape used before anything has been loaded.
func Empty() Program {
	return Program{}
}

// IsNew reports whether the backend has not assigned an id yet.
func (p Program) IsNew() bool {
	return p.ID == 0
}

// IsEmpty reports whether p equals the empty default shape.
func (p Program) IsEmpty() bool {
	return p.ID == 0 && len(p.Cover) == 0 && p.CoverContentType == "" && p.Title == "" &&
		p.Description == "" && p.StartDate == "" && p.EndDate == "" && p.Tags == "" && p.User == nil
}

// Clean returns the body sent on writes: a user reference without an id and
// a content type without a payload are dropped. Empty text fields are left
// out by the json encoder.
func (p Program) Clean() Program {
	out := p
	if out.User != nil {
		if out.User.ID == 0 {
			out.User = nil
		} else {
			u := *out.User
			out.User = &u
		}
	}
	if len(out.Cover) == 0 {
		out.Cover = nil
		out.CoverContentType = ""
	}
	return out
}

// WithBlob stages data and its content type under the binary field name,
// leaving every other field untouched.
func (p Program) WithBlob(name string, data []byte, contentType string) (Program, error) {
	switch name {
	case CoverField:
		p.Cover = data
		p.CoverContentType = contentType
		return p, nil
	default:
		return p, fmt.Errorf("%w: %q", ErrUnknownBlob, name)
	}
}

// HasCover reports whether a cover payload is staged or stored.
func (p Program) HasCover() bool {
	return len(p.Cover) > 0
}

// CoverSize is the decoded cover size in human-readable form.
func (p Program) CoverSize() string {
	return humanize.Bytes(uint64(len(p.Cover)))
}

// CoverDataURI renders the cover as a data URI, or "" when there is none.
func (p Program) CoverDataURI() string {
	if !p.HasCover() || p.CoverContentType == "" {
		return ""
	}
	return fmt.Sprintf("data:%s;base64,%s", p.CoverContentType, base64.StdEncoding.EncodeToString(p.Cover))
}

// OwnerLogin is the display value of the owner, "" when unowned.
func (p Program) OwnerLogin() string {
	if p.User == nil {
		return ""
	}
	return p.User.Login
}
