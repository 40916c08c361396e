package dev

import (
	"time"

	"github.com/nu7hatch/gouuid"
)

// Error is an index document describing a failure that needs developer
// attention, such as an event payload that could not be decoded. The payload
// is carried verbatim so the failing input survives the log rotation.
type Error struct {
	Time      time.Time   `json:"time"`
	Component string      `json:"component"`
	Name      string      `json:"name"`
	Error     string      `json:"error"`
	Payload   interface{} `json:"payload,omitempty"`
}

func (e Error) Slug() string {
	u, _ := uuid.NewV4()
	return u.String()
}

func NewError(component, name string, err error, payload interface{}) Error {
	return Error{
		Time:      time.Now(),
		Component: component,
		Name:      name,
		Error:     err.Error(),
		Payload:   payload,
	}
}
