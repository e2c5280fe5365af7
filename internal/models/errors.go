package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrEmailNotUnique   = errors.New("this email address is already registered")
	ErrUserReference    = errors.New("the referenced user does not exist")
)
