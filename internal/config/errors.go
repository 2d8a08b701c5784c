package config

import "fmt"

// DuplicateDescriptorError reports two schema descriptors sharing a name.
// It indicates a programming defect in the option tables, not a user error.
type DuplicateDescriptorError struct {
	Name string
}

func (e *DuplicateDescriptorError) Error() string {
	return fmt.Sprintf("duplicate option descriptor %q", e.Name)
}

// MissingOptionError reports a required option that no source supplied.
type MissingOptionError struct {
	Name string
}

func (e *MissingOptionError) Error() string {
	return fmt.Sprintf("missing required option %q", e.Name)
}

// EnumValueError reports an unrecognized token for an enumerated option.
type EnumValueError struct {
	Name  string
	Value string
}

func (e *EnumValueError) Error() string {
	return fmt.Sprintf("%q is not a valid value for %s", e.Value, e.Name)
}

// EndpointError reports a malformed host:port endpoint.
type EndpointError struct {
	Name  string
	Value string
	Cause error
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("%q is not a valid endpoint for %s: %v", e.Value, e.Name, e.Cause)
}

func (e *EndpointError) Unwrap() error { return e.Cause }

// AddressPrefixError reports a malformed address/prefix-length pair, including
// prefix lengths out of range for the address family.
type AddressPrefixError struct {
	Name  string
	Value string
	Cause error
}

func (e *AddressPrefixError) Error() string {
	return fmt.Sprintf("%q is not a valid address prefix for %s: %v", e.Value, e.Name, e.Cause)
}

func (e *AddressPrefixError) Unwrap() error { return e.Cause }

// HardwareAddrError reports a token that is not a colon-separated hex sextet.
type HardwareAddrError struct {
	Name  string
	Value string
}

func (e *HardwareAddrError) Error() string {
	return fmt.Sprintf("%q is not a valid hardware address for %s", e.Value, e.Name)
}

// CredentialError wraps any failure to load certificate or private-key
// material from a file. The loader does not distinguish a missing file from
// an unparsable one beyond the wrapped cause.
type CredentialError struct {
	Path  string
	Cause error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("unable to load credential file %q: %v", e.Path, e.Cause)
}

func (e *CredentialError) Unwrap() error { return e.Cause }

// FileUnreadableError reports a configuration file that was explicitly named
// (command line or environment) but does not exist or cannot be opened.
// Discovery-path misses never produce this error.
type FileUnreadableError struct {
	Path  string
	Cause error
}

func (e *FileUnreadableError) Error() string {
	return fmt.Sprintf("configuration file %q is not readable: %v", e.Path, e.Cause)
}

func (e *FileUnreadableError) Unwrap() error { return e.Cause }
