package config

import (
	"context"
	"crypto"
	"crypto/x509"
	"fmt"
	"io"
	"log/slog"
	"net/netip"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Aggregate is the final, immutable configuration handed to the networking
// engine. It is constructed exactly once per process startup and never
// mutated or reloaded afterwards.
type Aggregate struct {
	Channel    ChannelConfig
	Security   SecurityConfig
	TapAdapter TapAdapterConfig
	Switch     SwitchConfig
}

// ChannelConfig configures the secure control-channel transport.
type ChannelConfig struct {
	HostnameResolution ResolutionProtocol
	ListenOn           Endpoint
	HelloTimeout       time.Duration
	Contacts           []Endpoint
}

// Identity holds the node's credential handles. The signature pair is always
// present; the encryption pair is optional and all-or-nothing.
type Identity struct {
	SignatureCertificate  *x509.Certificate
	SignatureKey          crypto.Signer
	EncryptionCertificate *x509.Certificate
	EncryptionKey         crypto.Signer
}

// HasEncryptionPair reports whether the optional encryption credentials are
// present.
func (id Identity) HasEncryptionPair() bool {
	return id.EncryptionCertificate != nil && id.EncryptionKey != nil
}

// CertificateValidator is the certificate-validation strategy, resolved once
// during assembly. The engine dispatches on Mode; ScriptPath is set only for
// ValidateScript and Custom only for ValidateCustom.
type CertificateValidator struct {
	Mode       ValidationMode
	ScriptPath string
	Custom     func(ctx context.Context, cert *x509.Certificate) error
}

// SecurityConfig configures identity and peer-certificate validation.
type SecurityConfig struct {
	Identity    Identity
	Validator   CertificateValidator
	Authorities []*x509.Certificate
}

// TapAdapterConfig configures the virtual network adapter. Nil prefixes mean
// the corresponding address is not assigned.
type TapAdapterConfig struct {
	Enabled          bool
	IPv4             *netip.Prefix
	IPv6             *netip.Prefix
	ARPProxyEnabled  bool
	ARPProxyFakeAddr HardwareAddr
	DHCPProxyEnabled bool
	DHCPServerIPv4   *netip.Prefix
	DHCPServerIPv6   *netip.Prefix
}

// SwitchConfig configures frame forwarding between peers.
type SwitchConfig struct {
	RoutingMethod    RoutingMethod
	RelayModeEnabled bool
}

// Raw-section structs mirror one domain each. The assembler decodes the
// merged raw values into these before semantic conversion, so scalar shape
// errors (a non-numeric hello_timeout, say) surface with the domain name
// attached.

type rawChannel struct {
	HostnameResolutionProtocol string   `opt:"hostname_resolution_protocol"`
	ListenOn                   string   `opt:"listen_on"`
	HelloTimeout               uint64   `opt:"hello_timeout"`
	Contact                    []string `opt:"contact"`
}

type rawSecurity struct {
	SignatureCertificateFile    string   `opt:"signature_certificate_file"`
	SignaturePrivateKeyFile     string   `opt:"signature_private_key_file"`
	EncryptionCertificateFile   string   `opt:"encryption_certificate_file"`
	EncryptionPrivateKeyFile    string   `opt:"encryption_private_key_file"`
	CertificateValidationMethod string   `opt:"certificate_validation_method"`
	CertificateValidationScript string   `opt:"certificate_validation_script"`
	AuthorityCertificateFile    []string `opt:"authority_certificate_file"`
}

type rawTapAdapter struct {
	Enabled                           bool   `opt:"enabled"`
	IPv4AddressPrefixLength           string `opt:"ipv4_address_prefix_length"`
	IPv6AddressPrefixLength           string `opt:"ipv6_address_prefix_length"`
	ARPProxyEnabled                   bool   `opt:"arp_proxy_enabled"`
	ARPProxyFakeEthernetAddress       string `opt:"arp_proxy_fake_ethernet_address"`
	DHCPProxyEnabled                  bool   `opt:"dhcp_proxy_enabled"`
	DHCPServerIPv4AddressPrefixLength string `opt:"dhcp_server_ipv4_address_prefix_length"`
	DHCPServerIPv6AddressPrefixLength string `opt:"dhcp_server_ipv6_address_prefix_length"`
}

type rawSwitch struct {
	RoutingMethod    string `opt:"routing_method"`
	RelayModeEnabled bool   `opt:"relay_mode_enabled"`
}

// Assembler orchestrates conversion and credential loading against a raw
// value set. The zero value is usable; Logger only receives the debug note
// about a half-supplied encryption pair.
type Assembler struct {
	Logger *slog.Logger
}

// Assemble produces the configuration aggregate. The first failure aborts
// assembly and propagates its specific error; no partially constructed
// aggregate is ever returned.
func (a *Assembler) Assemble(raw *RawValues) (*Aggregate, error) {
	logger := a.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	channel, err := assembleChannel(raw)
	if err != nil {
		return nil, err
	}
	security, err := assembleSecurity(raw, logger)
	if err != nil {
		return nil, err
	}
	adapter, err := assembleTapAdapter(raw)
	if err != nil {
		return nil, err
	}
	sw, err := assembleSwitch(raw)
	if err != nil {
		return nil, err
	}

	return &Aggregate{
		Channel:    channel,
		Security:   security,
		TapAdapter: adapter,
		Switch:     sw,
	}, nil
}

// Assemble is the package-level convenience for a silent Assembler.
func Assemble(raw *RawValues) (*Aggregate, error) {
	return (&Assembler{}).Assemble(raw)
}

func assembleChannel(raw *RawValues) (ChannelConfig, error) {
	var section rawChannel
	if err := decodeSection(raw, "fscp", &section); err != nil {
		return ChannelConfig{}, err
	}

	protocol, err := ParseResolutionProtocol("fscp.hostname_resolution_protocol", section.HostnameResolutionProtocol)
	if err != nil {
		return ChannelConfig{}, err
	}
	listen, err := ParseEndpoint("fscp.listen_on", section.ListenOn)
	if err != nil {
		return ChannelConfig{}, err
	}
	contacts := make([]Endpoint, 0, len(section.Contact))
	for _, contact := range section.Contact {
		ep, err := ParseEndpoint("fscp.contact", contact)
		if err != nil {
			return ChannelConfig{}, err
		}
		contacts = append(contacts, ep)
	}

	return ChannelConfig{
		HostnameResolution: protocol,
		ListenOn:           listen,
		HelloTimeout:       MillisecondDuration(section.HelloTimeout),
		Contacts:           contacts,
	}, nil
}

func assembleSecurity(raw *RawValues, logger *slog.Logger) (SecurityConfig, error) {
	var section rawSecurity
	if err := decodeSection(raw, "security", &section); err != nil {
		return SecurityConfig{}, err
	}

	signatureCert, err := LoadCertificate(section.SignatureCertificateFile)
	if err != nil {
		return SecurityConfig{}, err
	}
	signatureKey, err := LoadPrivateKey(section.SignaturePrivateKeyFile)
	if err != nil {
		return SecurityConfig{}, err
	}

	identity := Identity{
		SignatureCertificate: signatureCert,
		SignatureKey:         signatureKey,
	}

	// The encryption pair is a semantic unit: load it only when both halves
	// were supplied. A half-supplied pair is treated as absent.
	switch {
	case section.EncryptionCertificateFile != "" && section.EncryptionPrivateKeyFile != "":
		encryptionCert, err := LoadCertificate(section.EncryptionCertificateFile)
		if err != nil {
			return SecurityConfig{}, err
		}
		encryptionKey, err := LoadPrivateKey(section.EncryptionPrivateKeyFile)
		if err != nil {
			return SecurityConfig{}, err
		}
		identity.EncryptionCertificate = encryptionCert
		identity.EncryptionKey = encryptionKey
	case section.EncryptionCertificateFile != "" || section.EncryptionPrivateKeyFile != "":
		logger.Debug("ignoring half-supplied encryption key pair",
			"certificate_file", section.EncryptionCertificateFile,
			"private_key_file", section.EncryptionPrivateKeyFile)
	}

	mode, err := ParseValidationMethod("security.certificate_validation_method", section.CertificateValidationMethod)
	if err != nil {
		return SecurityConfig{}, err
	}
	validator := CertificateValidator{Mode: mode}
	if section.CertificateValidationScript != "" {
		validator = CertificateValidator{
			Mode:       ValidateScript,
			ScriptPath: section.CertificateValidationScript,
		}
	}

	authorities := make([]*x509.Certificate, 0, len(section.AuthorityCertificateFile))
	for _, path := range section.AuthorityCertificateFile {
		cert, err := LoadTrustedCertificate(path)
		if err != nil {
			return SecurityConfig{}, err
		}
		authorities = append(authorities, cert)
	}

	return SecurityConfig{
		Identity:    identity,
		Validator:   validator,
		Authorities: authorities,
	}, nil
}

func assembleTapAdapter(raw *RawValues) (TapAdapterConfig, error) {
	var section rawTapAdapter
	if err := decodeSection(raw, "tap_adapter", &section); err != nil {
		return TapAdapterConfig{}, err
	}

	ipv4, err := parseOptionalPrefix("tap_adapter.ipv4_address_prefix_length", section.IPv4AddressPrefixLength)
	if err != nil {
		return TapAdapterConfig{}, err
	}
	ipv6, err := parseOptionalPrefix("tap_adapter.ipv6_address_prefix_length", section.IPv6AddressPrefixLength)
	if err != nil {
		return TapAdapterConfig{}, err
	}
	fakeAddr, err := ParseHardwareAddr("tap_adapter.arp_proxy_fake_ethernet_address", section.ARPProxyFakeEthernetAddress)
	if err != nil {
		return TapAdapterConfig{}, err
	}
	dhcpIPv4, err := parseOptionalPrefix("tap_adapter.dhcp_server_ipv4_address_prefix_length", section.DHCPServerIPv4AddressPrefixLength)
	if err != nil {
		return TapAdapterConfig{}, err
	}
	dhcpIPv6, err := parseOptionalPrefix("tap_adapter.dhcp_server_ipv6_address_prefix_length", section.DHCPServerIPv6AddressPrefixLength)
	if err != nil {
		return TapAdapterConfig{}, err
	}

	return TapAdapterConfig{
		Enabled:          section.Enabled,
		IPv4:             ipv4,
		IPv6:             ipv6,
		ARPProxyEnabled:  section.ARPProxyEnabled,
		ARPProxyFakeAddr: fakeAddr,
		DHCPProxyEnabled: section.DHCPProxyEnabled,
		DHCPServerIPv4:   dhcpIPv4,
		DHCPServerIPv6:   dhcpIPv6,
	}, nil
}

func assembleSwitch(raw *RawValues) (SwitchConfig, error) {
	var section rawSwitch
	if err := decodeSection(raw, "switch", &section); err != nil {
		return SwitchConfig{}, err
	}

	routing, err := ParseRoutingMethod("switch.routing_method", section.RoutingMethod)
	if err != nil {
		return SwitchConfig{}, err
	}

	return SwitchConfig{
		RoutingMethod:    routing,
		RelayModeEnabled: section.RelayModeEnabled,
	}, nil
}

// decodeSection projects one domain's raw values into a raw-section struct.
// Weak typing lets tokens arrive as native file types (TOML integers and
// booleans) or as command-line strings and still land in the right field.
func decodeSection(raw *RawValues, domain string, target any) error {
	section := make(map[string]any)
	for name, tokens := range raw.values {
		prefix, key, found := strings.Cut(name, ".")
		if !found || prefix != domain || len(tokens) == 0 {
			continue
		}
		if len(tokens) == 1 {
			section[key] = tokens[0]
		} else {
			section[key] = tokens
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "opt",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create %s option decoder: %w", domain, err)
	}
	if err := decoder.Decode(section); err != nil {
		return fmt.Errorf("invalid %s option value: %w", domain, err)
	}
	return nil
}
