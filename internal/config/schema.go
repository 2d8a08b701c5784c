package config

import "strings"

// Kind is the declared value kind of a schema option.
type Kind int

const (
	// KindString options carry a single free-form string token.
	KindString Kind = iota
	// KindBool options carry a boolean token.
	KindBool
	// KindUint options carry an unsigned integer token.
	KindUint
	// KindStringList options accumulate zero or more string tokens.
	KindStringList
)

// Descriptor declares one recognized configuration option: its dot-namespaced
// name, value kind, default (nil when the option has none), and whether a
// value is mandatory.
type Descriptor struct {
	Name     string
	Kind     Kind
	Default  any
	Required bool
	Help     string
}

// Domain returns the namespace part of the option name, e.g. "fscp" for
// "fscp.listen_on".
func (d Descriptor) Domain() string {
	domain, _, _ := strings.Cut(d.Name, ".")
	return domain
}

// Key returns the option name with the domain prefix stripped, e.g.
// "listen_on" for "fscp.listen_on". This is the key used inside the option's
// configuration-file section.
func (d Descriptor) Key() string {
	_, key, _ := strings.Cut(d.Name, ".")
	return key
}

// IsList reports whether the option accumulates multiple tokens.
func (d Descriptor) IsList() bool { return d.Kind == KindStringList }

// The four domain tables are plain data. Parsing never reaches into them and
// each table is testable in isolation.

var channelOptions = []Descriptor{
	{
		Name:    "fscp.hostname_resolution_protocol",
		Kind:    KindString,
		Default: "system_default",
		Help:    "The hostname resolution protocol to use (system_default, ipv4, ipv6).",
	},
	{
		Name:    "fscp.listen_on",
		Kind:    KindString,
		Default: "0.0.0.0:12000",
		Help:    "The endpoint to listen on.",
	},
	{
		Name:    "fscp.hello_timeout",
		Kind:    KindUint,
		Default: uint(3000),
		Help:    "The timeout for HELLO messages, in milliseconds.",
	},
	{
		Name: "fscp.contact",
		Kind: KindStringList,
		Help: "The address of a host to contact. May be repeated.",
	},
}

var securityOptions = []Descriptor{
	{
		Name:     "security.signature_certificate_file",
		Kind:     KindString,
		Required: true,
		Help:     "The certificate file to use for signing.",
	},
	{
		Name:     "security.signature_private_key_file",
		Kind:     KindString,
		Required: true,
		Help:     "The private key file to use for signing.",
	},
	{
		Name: "security.encryption_certificate_file",
		Kind: KindString,
		Help: "The certificate file to use for encryption.",
	},
	{
		Name: "security.encryption_private_key_file",
		Kind: KindString,
		Help: "The private key file to use for encryption.",
	},
	{
		Name:    "security.certificate_validation_method",
		Kind:    KindString,
		Default: "default",
		Help:    "The certificate validation method (default, none).",
	},
	{
		Name: "security.certificate_validation_script",
		Kind: KindString,
		Help: "The certificate validation script to use.",
	},
	{
		Name: "security.authority_certificate_file",
		Kind: KindStringList,
		Help: "An authority certificate file to trust. May be repeated.",
	},
}

var adapterOptions = []Descriptor{
	{
		Name:    "tap_adapter.enabled",
		Kind:    KindBool,
		Default: true,
		Help:    "Whether to enable the tap adapter.",
	},
	{
		Name:    "tap_adapter.ipv4_address_prefix_length",
		Kind:    KindString,
		Default: "9.0.0.1/24",
		Help:    "The tap adapter IPv4 address and prefix length.",
	},
	{
		Name:    "tap_adapter.ipv6_address_prefix_length",
		Kind:    KindString,
		Default: "fe80::1/10",
		Help:    "The tap adapter IPv6 address and prefix length.",
	},
	{
		Name:    "tap_adapter.arp_proxy_enabled",
		Kind:    KindBool,
		Default: false,
		Help:    "Whether to enable the ARP proxy.",
	},
	{
		Name:    "tap_adapter.arp_proxy_fake_ethernet_address",
		Kind:    KindString,
		Default: "00:aa:bb:cc:dd:ee",
		Help:    "The ARP proxy fake ethernet address.",
	},
	{
		Name:    "tap_adapter.dhcp_proxy_enabled",
		Kind:    KindBool,
		Default: true,
		Help:    "Whether to enable the DHCP proxy.",
	},
	{
		Name:    "tap_adapter.dhcp_server_ipv4_address_prefix_length",
		Kind:    KindString,
		Default: "9.0.0.0/24",
		Help:    "The DHCP proxy server IPv4 address and prefix length.",
	},
	{
		Name:    "tap_adapter.dhcp_server_ipv6_address_prefix_length",
		Kind:    KindString,
		Default: "fe80::/10",
		Help:    "The DHCP proxy server IPv6 address and prefix length.",
	},
}

var switchOptions = []Descriptor{
	{
		Name:    "switch.routing_method",
		Kind:    KindString,
		Default: "switch",
		Help:    "The routing method for messages (switch, hub).",
	},
	{
		Name:    "switch.relay_mode_enabled",
		Kind:    KindBool,
		Default: false,
		Help:    "Whether to enable the relay mode.",
	},
}

// Registry is the combined, validated option schema.
type Registry struct {
	ordered []Descriptor
	byName  map[string]Descriptor
}

// NewRegistry combines the four domain tables into a single schema. A
// duplicate option name returns a DuplicateDescriptorError.
func NewRegistry() (*Registry, error) {
	return newRegistry(channelOptions, securityOptions, adapterOptions, switchOptions)
}

// MustRegistry is like NewRegistry but panics on error. A duplicate
// descriptor is a defect in the option tables, so panicking at startup is the
// right response.
func MustRegistry() *Registry {
	reg, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return reg
}

func newRegistry(tables ...[]Descriptor) (*Registry, error) {
	reg := &Registry{
		byName: make(map[string]Descriptor),
	}
	for _, table := range tables {
		for _, d := range table {
			if _, exists := reg.byName[d.Name]; exists {
				return nil, &DuplicateDescriptorError{Name: d.Name}
			}
			reg.byName[d.Name] = d
			reg.ordered = append(reg.ordered, d)
		}
	}
	return reg, nil
}

// Lookup returns the descriptor for a fully qualified option name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Descriptors returns all descriptors in declaration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Required returns the names of all required options in declaration order.
func (r *Registry) Required() []string {
	var names []string
	for _, d := range r.ordered {
		if d.Required {
			names = append(names, d.Name)
		}
	}
	return names
}
