package config

import (
	"encoding/hex"
	"errors"
	"net"
	"net/netip"
	"strconv"
	"strings"
	"time"
)

// ResolutionProtocol selects how peer hostnames are resolved.
type ResolutionProtocol int

const (
	// ResolveSystemDefault lets the resolver pick the address family.
	ResolveSystemDefault ResolutionProtocol = iota
	// ResolveIPv4 forces IPv4 resolution.
	ResolveIPv4
	// ResolveIPv6 forces IPv6 resolution.
	ResolveIPv6
)

func (p ResolutionProtocol) String() string {
	switch p {
	case ResolveIPv4:
		return "ipv4"
	case ResolveIPv6:
		return "ipv6"
	default:
		return "system_default"
	}
}

// ParseResolutionProtocol converts a hostname-resolution token. name is the
// option the token came from, used in the error.
func ParseResolutionProtocol(name, value string) (ResolutionProtocol, error) {
	switch value {
	case "system_default":
		return ResolveSystemDefault, nil
	case "ipv4":
		return ResolveIPv4, nil
	case "ipv6":
		return ResolveIPv6, nil
	}
	return ResolveSystemDefault, &EnumValueError{Name: name, Value: value}
}

// Endpoint is a host:port contact or listen address. Host may be a hostname
// or an IP literal; IPv6 literals are stored unbracketed.
type Endpoint struct {
	Host string
	Port uint16
}

// String renders the endpoint in host:port form, re-bracketing IPv6 literals.
// Parsing the result yields an equivalent endpoint.
func (e Endpoint) String() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(int(e.Port)))
}

// ParseEndpoint converts a host:port token.
func ParseEndpoint(name, value string) (Endpoint, error) {
	host, portStr, err := net.SplitHostPort(value)
	if err != nil {
		return Endpoint{}, &EndpointError{Name: name, Value: value, Cause: err}
	}
	if host == "" {
		return Endpoint{}, &EndpointError{Name: name, Value: value, Cause: errors.New("empty host")}
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return Endpoint{}, &EndpointError{Name: name, Value: value, Cause: errors.New("invalid port")}
	}
	return Endpoint{Host: host, Port: uint16(port)}, nil
}

// MillisecondDuration maps an unsigned integer option value to a duration.
// The mapping is direct: no unit suffixes are parsed.
func MillisecondDuration(ms uint64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// ParseAddressPrefix converts an address/prefix-length token such as
// "9.0.0.1/24" or "fe80::1/10". The address keeps its host bits; the prefix
// length must be in range for the address family.
func ParseAddressPrefix(name, value string) (netip.Prefix, error) {
	prefix, err := netip.ParsePrefix(value)
	if err != nil {
		return netip.Prefix{}, &AddressPrefixError{Name: name, Value: value, Cause: err}
	}
	return prefix, nil
}

// parseOptionalPrefix treats an empty token as "absent" rather than an error.
func parseOptionalPrefix(name, value string) (*netip.Prefix, error) {
	if value == "" {
		return nil, nil
	}
	prefix, err := ParseAddressPrefix(name, value)
	if err != nil {
		return nil, err
	}
	return &prefix, nil
}

// HardwareAddr is a 6-byte ethernet address.
type HardwareAddr [6]byte

// String renders the address as a colon-separated hex sextet.
func (a HardwareAddr) String() string {
	return net.HardwareAddr(a[:]).String()
}

// ParseHardwareAddr converts a colon-separated hex sextet such as
// "00:aa:bb:cc:dd:ee". Other arities and separators accepted by the platform
// are rejected here: the schema promises exactly six colon-separated pairs.
func ParseHardwareAddr(name, value string) (HardwareAddr, error) {
	var addr HardwareAddr
	parts := strings.Split(value, ":")
	if len(parts) != 6 {
		return HardwareAddr{}, &HardwareAddrError{Name: name, Value: value}
	}
	for i, part := range parts {
		if len(part) != 2 {
			return HardwareAddr{}, &HardwareAddrError{Name: name, Value: value}
		}
		b, err := hex.DecodeString(part)
		if err != nil {
			return HardwareAddr{}, &HardwareAddrError{Name: name, Value: value}
		}
		addr[i] = b[0]
	}
	return addr, nil
}

// ValidationMode tags the certificate-validation strategy. The first two
// values are addressable from configuration; Script is bound when a
// validation-script path is supplied; Custom is reserved for callers that
// install their own strategy on the assembled configuration.
type ValidationMode int

const (
	// ValidateDefault applies the engine's built-in chain validation.
	ValidateDefault ValidationMode = iota
	// ValidateNone disables certificate validation.
	ValidateNone
	// ValidateScript invokes an external validation script.
	ValidateScript
	// ValidateCustom dispatches to a caller-installed strategy.
	ValidateCustom
)

func (m ValidationMode) String() string {
	switch m {
	case ValidateNone:
		return "none"
	case ValidateScript:
		return "script"
	case ValidateCustom:
		return "custom"
	default:
		return "default"
	}
}

// ParseValidationMethod converts a certificate-validation-method token. Only
// "default" and "none" are valid tokens; the script and custom modes are
// selected structurally, not by token.
func ParseValidationMethod(name, value string) (ValidationMode, error) {
	switch value {
	case "default":
		return ValidateDefault, nil
	case "none":
		return ValidateNone, nil
	}
	return ValidateDefault, &EnumValueError{Name: name, Value: value}
}

// RoutingMethod selects how the switching layer forwards frames.
type RoutingMethod int

const (
	// RoutingSwitch learns peer addresses and forwards selectively.
	RoutingSwitch RoutingMethod = iota
	// RoutingHub floods every frame to every peer.
	RoutingHub
)

func (m RoutingMethod) String() string {
	if m == RoutingHub {
		return "hub"
	}
	return "switch"
}

// ParseRoutingMethod converts a routing-method token.
func ParseRoutingMethod(name, value string) (RoutingMethod, error) {
	switch value {
	case "switch":
		return RoutingSwitch, nil
	case "hub":
		return RoutingHub, nil
	}
	return RoutingSwitch, &EnumValueError{Name: name, Value: value}
}
