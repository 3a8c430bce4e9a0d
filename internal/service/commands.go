package service

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator"
	"github.com/migishaone/xenovaPay/internal/domain"
)

// descriptionPattern bounds statement descriptions to the charset the
// processor accepts on customer statements.
var descriptionPattern = regexp.MustCompile(`^[a-zA-Z0-9 ]*$`)

const maxDescriptionLen = 22

type DepositCommand struct {
	Amount        string `validate:"required"`
	Currency      string `validate:"required"`
	CountryPrefix string `validate:"required"`
	PhoneNumber   string `validate:"required"`
	Provider      string `validate:"required"`
	Description   string
}

type PayoutCommand struct {
	Amount        string `validate:"required"`
	Currency      string `validate:"required"`
	CountryPrefix string `validate:"required"`
	PhoneNumber   string `validate:"required"`
	Provider      string `validate:"required"`
	Description   string
}

// HostedPaymentCommand opens a widget session. Provider and country are
// chosen on the hosted page, so only the money fields are required here.
type HostedPaymentCommand struct {
	Amount      string `validate:"required"`
	Currency    string `validate:"required"`
	Country     string
	Description string
}

func validateDescription(desc string) error {
	if len(desc) > maxDescriptionLen {
		return fmt.Errorf("description exceeds %d characters", maxDescriptionLen)
	}
	if !descriptionPattern.MatchString(desc) {
		return fmt.Errorf("description may only contain letters, digits and spaces")
	}
	return nil
}

func validateCommand(validate *validator.Validate, cmd any, amount, description string) (string, error) {
	if err := validate.Struct(cmd); err != nil {
		return "", NewInvalidInputError(err)
	}
	normalized, err := domain.NormalizeAmount(amount)
	if err != nil {
		return "", NewInvalidInputError(err)
	}
	if err := validateDescription(description); err != nil {
		return "", NewInvalidInputError(err)
	}
	return normalized, nil
}
