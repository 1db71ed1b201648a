package configuration

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrDuplicateName matches any *DuplicateNameError.
	ErrDuplicateName = errors.New("duplicate configuration name")
	// ErrUnknownConfiguration matches any *UnknownConfigurationError.
	ErrUnknownConfiguration = errors.New("unknown configuration")

	errNoConfiguration = errors.New("instantiator returned no configuration")
)

// DuplicateNameError is returned by Create when the name is taken.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("Cannot add a %s with name '%s' as a %s with that name already exists.",
		typeDisplayName, e.Name, typeDisplayName)
}

func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// UnknownConfigurationError is returned when a name lookup misses.
type UnknownConfigurationError struct {
	Name string
	Type string
}

func (e *UnknownConfigurationError) Error() string {
	typ := e.Type
	if typ == "" {
		typ = typeDisplayName
	}
	return fmt.Sprintf("%s with name '%s' not found.", cases.Title(language.English).String(typ), e.Name)
}

func (e *UnknownConfigurationError) Is(target error) bool {
	return target == ErrUnknownConfiguration
}

// InstantiationError wraps a failure to construct a configuration.
type InstantiationError struct {
	Name string
	Err  error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("could not create %s '%s': %v", typeDisplayName, e.Name, e.Err)
}

func (e *InstantiationError) Unwrap() error {
	return e.Err
}
