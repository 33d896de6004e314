package models

import (
	"errors"
)

var (
	ErrGeneral             = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound    = errors.New("there is no")
	ErrMonthLabelNotUnique = errors.New("a month with this label already exists")
	ErrMonthReference      = errors.New("there is no month for the ID you specified in the row")
)
