package models

import "errors"

var (
	ErrInvalidPrice     = errors.New("invalid price")
	ErrMisalignedLabels = errors.New("labels and closes differ in length")
)
