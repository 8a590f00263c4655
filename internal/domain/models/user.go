package models

import (
	"strings"
	"time"

	"github.com/nytron88/gdd-module-types/internal/config"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// User is a person known to the identity provider. ID is the provider's stable
// subject identifier and is never generated locally.
type User struct {
	ID        string     `json:"id" db:"id"`
	Email     string     `json:"email" db:"email"`
	Name      string     `json:"name" db:"name"`
	Age       int        `json:"age" db:"age"`
	Country   string     `json:"country" db:"country"`
	Language  string     `json:"language" db:"language"`
	Interests []Interest `json:"interests" db:"interests"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// NewUser builds a validated user stamped with creation time
func NewUser(id, email, name string, age int, country, language string, interests []Interest) (*User, error) {
	now := Now()
	u := &User{
		ID:        strings.TrimSpace(id),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Name:      strings.TrimSpace(name),
		Age:       age,
		Country:   strings.TrimSpace(country),
		Language:  strings.TrimSpace(language),
		Interests: interests,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if u.Interests == nil {
		u.Interests = []Interest{}
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Touch advances UpdatedAt; call on every successful mutation
func (u *User) Touch() {
	u.UpdatedAt = NextTimestamp(u.UpdatedAt)
}

func (u *User) Validate() error {
	return toDomainError(validation.ValidateStruct(u,
		validation.Field(&u.ID, validation.Required, notBlank, validation.Length(1, config.MaxExternalIDLength)),
		validation.Field(&u.Email, validation.Required, is.EmailFormat, validation.Length(1, config.MaxEmailLength)),
		validation.Field(&u.Name, validation.Required, notBlank, validation.Length(1, config.MaxNameLength)),
		validation.Field(&u.Age, validation.Required, validation.Min(1), validation.Max(150)),
		validation.Field(&u.Country, validation.Required, notBlank),
		validation.Field(&u.Language, validation.Required, notBlank),
		validation.Field(&u.Interests,
			validation.Each(validation.Required, validation.In(interestValues()...).Error("must be one of health, environment, social, economic")),
			validation.By(uniqueStrings[Interest]),
		),
		validation.Field(&u.CreatedAt, validation.Required),
		validation.Field(&u.UpdatedAt, validation.Required, validation.By(notBefore(u.CreatedAt))),
	))
}
