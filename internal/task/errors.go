package task

import "errors"

// Error variables for task operations.
var (
	ErrConfigFileNotFound  = errors.New("config file not found")
	ErrConfigFileRead      = errors.New("cannot read config file")
	ErrConfigInvalid       = errors.New("invalid config file")
	ErrDataFileEmpty       = errors.New("data file cannot be empty")
	ErrTaskNotFound        = errors.New("task not found")
	ErrDescriptionRequired = errors.New("description is required")
	ErrPromptAborted       = errors.New("prompt aborted")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidPriority     = errors.New("invalid priority")
	ErrInvalidView         = errors.New("invalid view")
	ErrInvalidDate         = errors.New("invalid date")
	ErrMalformedRecord     = errors.New("malformed record")
)
