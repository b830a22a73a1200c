package kernel

import (
	"errors"
	"strings"

	"cargotrack/internal/pkg/errs"
)

// Contact is the applicant contact triple carried by every item: the person
// who submitted the item and who is notified as it moves through the network.
//
// Name, phone, and email are all required at ingestion time; a manifest record
// missing any of them is dropped during parsing before it ever becomes an item.
type Contact struct {
	name  string
	phone string
	email string
}

// NewContact creates a validated Contact. All three fields are required and
// are trimmed of surrounding whitespace.
func NewContact(name, phone, email string) (Contact, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	email = strings.TrimSpace(email)

	var err error
	if name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("name"))
	}
	if phone == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("phone"))
	}
	if email == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("email"))
	}
	if err != nil {
		return Contact{}, err
	}

	return Contact{name: name, phone: phone, email: email}, nil
}

// Name returns the contact person's full name.
func (c Contact) Name() string {
	return c.name
}

// Phone returns the contact phone number.
func (c Contact) Phone() string {
	return c.phone
}

// Email returns the contact email address.
func (c Contact) Email() string {
	return c.email
}

// Validate checks the contact carries all required fields.
func (c Contact) Validate() error {
	if c.name == "" || c.phone == "" || c.email == "" {
		return errs.NewValueIsRequiredError("contact must be created via NewContact")
	}
	return nil
}

// IsEqual compares two contacts field by field.
func (c Contact) IsEqual(other Contact) bool {
	return c == other
}
