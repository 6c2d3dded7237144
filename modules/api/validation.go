package api

import (
	"net/mail"
	"unicode/utf8"
)

// Field-shape validation for request bodies. Each validator returns a
// field→message map; an empty map means the input is valid. The maps are
// sent back verbatim as 400 bodies so the client can attach messages to
// form fields.

const (
	minNameLen     = 2
	maxNameLen     = 30
	minPasswordLen = 6
	maxPasswordLen = 150
	minContentLen  = 2
	maxContentLen  = 30
)

// validateRegisterInput checks the shape of a registration request.
func validateRegisterInput(req RegisterRequest) map[string]string {
	errs := make(map[string]string)

	if req.Email == "" {
		errs["email"] = "Email field can not be empty"
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		errs["email"] = "Email is not the right format"
	}

	if req.Name == "" {
		errs["name"] = "Name field can not be empty"
	} else if !lengthBetween(req.Name, minNameLen, maxNameLen) {
		errs["name"] = "Name must be between 2 and 30 characters long"
	}

	if req.Password == "" {
		errs["password"] = "Password field can not be empty"
	} else if !lengthBetween(req.Password, minPasswordLen, maxPasswordLen) {
		errs["password"] = "Password must be between 6 and 150 characters long"
	}

	if req.ConfirmPassword == "" {
		errs["confirmPassword"] = "Confirm Password field can not be empty"
	} else if req.Password != req.ConfirmPassword {
		errs["confirmPassword"] = "The 2 passwords do not match"
	}

	return errs
}

// validateToDoInput checks the shape of a to-do create/update request.
func validateToDoInput(req ToDoContentRequest) map[string]string {
	errs := make(map[string]string)

	if req.Content == "" {
		errs["content"] = "Content field can not be empty"
	} else if !lengthBetween(req.Content, minContentLen, maxContentLen) {
		errs["content"] = "Content must be between 2 and 30 characters long"
	}

	return errs
}

// lengthBetween counts runes, not bytes, so multi-byte input is measured the
// way a user sees it.
func lengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}
