package models

import (
	"fmt"

	"github.com/desertthunder/enroll/internal/shared"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// nameRule accepts one or more Unicode letters and nothing else.
const nameRule = "required,alphaunicode"

var validate = validator.New()

// Person holds a first and last name, each made only of letters.
type Person struct {
	firstName string
	lastName  string
}

// NewPerson validates both names and returns the [Person].
func NewPerson(firstName, lastName string) (Person, error) {
	var p Person
	if err := p.SetFirstName(firstName); err != nil {
		return Person{}, err
	}
	if err := p.SetLastName(lastName); err != nil {
		return Person{}, err
	}
	return p, nil
}

// FirstName returns the first name in title case.
func (p Person) FirstName() string { return titleCase(p.firstName) }

// LastName returns the last name in title case.
func (p Person) LastName() string { return titleCase(p.lastName) }

// SetFirstName replaces the first name if it is valid.
func (p *Person) SetFirstName(v string) error {
	if err := ValidateName("first name", v); err != nil {
		return err
	}
	p.firstName = v
	return nil
}

// SetLastName replaces the last name if it is valid.
func (p *Person) SetLastName(v string) error {
	if err := ValidateName("last name", v); err != nil {
		return err
	}
	p.lastName = v
	return nil
}

// Validate re-checks both names.
func (p Person) Validate() error {
	if err := ValidateName("first name", p.firstName); err != nil {
		return err
	}
	return ValidateName("last name", p.lastName)
}

func (p Person) String() string {
	return fmt.Sprintf("%s %s", p.FirstName(), p.LastName())
}

// ValidateName reports [shared.ErrInvalidName] unless value is a non-empty run of letters.
func ValidateName(field, value string) error {
	if err := validate.Var(value, nameRule); err != nil {
		return fmt.Errorf("%w: %s %q must contain only letters", shared.ErrInvalidName, field, value)
	}
	return nil
}

// titleCase upper-cases the first letter of each word and lower-cases the rest.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
