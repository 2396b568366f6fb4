package database

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrInvalidPage = errors.New("invalid page request")
	ErrInvalidData = errors.New("invalid record")
)

// Entity names the table an operation touched.
type Entity string

const (
	EntityProject Entity = "project"
	EntityWorker  Entity = "worker"
	EntityClient  Entity = "client"
	EntitySetting Entity = "setting"
)

type OpError struct {
	Op     string
	Entity Entity
	ID     string
	Err    error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.ID != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func wrapErr(entity Entity, op string, id string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Entity: entity, ID: id, Err: err}
}
