package models

import "fmt"

// ErrorNotFound is returned when an id does not resolve.
type ErrorNotFound struct {
	Resource string
	ID       uint
}

func (e ErrorNotFound) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s with id %d not found", e.Resource, e.ID)
}

// ErrorMismatch is returned when a version is addressed through a post it
// does not belong to.
type ErrorMismatch struct {
	VersionID uint
	PostID    uint
}

func (e ErrorMismatch) Error() string {
	return fmt.Sprintf("version %d does not belong to post %d", e.VersionID, e.PostID)
}

type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string {
	return e.Message
}

type ErrorForbidden struct {
	Message string
}

func (e ErrorForbidden) Error() string {
	return e.Message
}

type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string {
	return e.Message
}

type ErrorValidation struct {
	Message string
}

func (e ErrorValidation) Error() string {
	return e.Message
}
