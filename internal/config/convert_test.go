package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResolutionProtocol(t *testing.T) {
	t.Run("ValidTokens", func(t *testing.T) {
		cases := map[string]ResolutionProtocol{
			"system_default": ResolveSystemDefault,
			"ipv4":           ResolveIPv4,
			"ipv6":           ResolveIPv6,
		}
		for token, want := range cases {
			got, err := ParseResolutionProtocol("fscp.hostname_resolution_protocol", token)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, token, got.String())
		}
	})

	t.Run("UnknownToken", func(t *testing.T) {
		_, err := ParseResolutionProtocol("fscp.hostname_resolution_protocol", "bogus")
		var enumErr *EnumValueError
		require.ErrorAs(t, err, &enumErr)
		assert.Equal(t, "fscp.hostname_resolution_protocol", enumErr.Name)
		assert.Equal(t, "bogus", enumErr.Value)
	})
}

func TestParseEndpoint(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		cases := []struct {
			input string
			host  string
			port  uint16
		}{
			{"0.0.0.0:12000", "0.0.0.0", 12000},
			{"example.net:443", "example.net", 443},
			{"[fe80::1]:12000", "fe80::1", 12000},
			{"10.1.2.3:1", "10.1.2.3", 1},
		}
		for _, tc := range cases {
			ep, err := ParseEndpoint("fscp.listen_on", tc.input)
			require.NoError(t, err, tc.input)
			assert.Equal(t, tc.host, ep.Host)
			assert.Equal(t, tc.port, ep.Port)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		// Re-serializing and re-parsing yields an equivalent endpoint.
		for _, input := range []string{"0.0.0.0:12000", "example.net:443", "[fe80::1]:12000"} {
			ep, err := ParseEndpoint("fscp.contact", input)
			require.NoError(t, err)

			again, err := ParseEndpoint("fscp.contact", ep.String())
			require.NoError(t, err)
			assert.Equal(t, ep, again)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, input := range []string{"", "nohost", ":12000", "host:", "host:notaport", "host:70000", "fe80::1:12000"} {
			_, err := ParseEndpoint("fscp.listen_on", input)
			var epErr *EndpointError
			require.ErrorAs(t, err, &epErr, "input %q", input)
			assert.Equal(t, input, epErr.Value)
		}
	})
}

func TestMillisecondDuration(t *testing.T) {
	assert.Equal(t, 3*time.Second, MillisecondDuration(3000))
	assert.Equal(t, time.Duration(0), MillisecondDuration(0))
	assert.Equal(t, 1500*time.Millisecond, MillisecondDuration(1500))
}

func TestParseAddressPrefix(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		cases := []struct {
			input string
			bits  int
		}{
			{"9.0.0.1/24", 24},
			{"9.0.0.0/24", 24},
			{"fe80::1/10", 10},
			{"10.0.0.0/8", 8},
		}
		for _, tc := range cases {
			prefix, err := ParseAddressPrefix("tap_adapter.ipv4_address_prefix_length", tc.input)
			require.NoError(t, err, tc.input)
			assert.Equal(t, tc.bits, prefix.Bits())
			// Host bits are preserved: 9.0.0.1/24 is an adapter address, not a subnet.
			assert.Equal(t, tc.input, prefix.String())
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, input := range []string{"", "9.0.0.1", "9.0.0.1/33", "fe80::1/129", "9.0.0.1/-1", "not/24"} {
			_, err := ParseAddressPrefix("tap_adapter.ipv4_address_prefix_length", input)
			var prefixErr *AddressPrefixError
			require.ErrorAs(t, err, &prefixErr, "input %q", input)
		}
	})
}

func TestParseHardwareAddr(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		addr, err := ParseHardwareAddr("tap_adapter.arp_proxy_fake_ethernet_address", "00:aa:bb:cc:dd:ee")
		require.NoError(t, err)
		assert.Equal(t, HardwareAddr{0x00, 0xaa, 0xbb, 0xcc, 0xdd, 0xee}, addr)
		assert.Equal(t, "00:aa:bb:cc:dd:ee", addr.String())
	})

	t.Run("RoundTrip", func(t *testing.T) {
		addr, err := ParseHardwareAddr("tap_adapter.arp_proxy_fake_ethernet_address", "02:00:5e:10:00:01")
		require.NoError(t, err)
		again, err := ParseHardwareAddr("tap_adapter.arp_proxy_fake_ethernet_address", addr.String())
		require.NoError(t, err)
		assert.Equal(t, addr, again)
	})

	t.Run("Rejected", func(t *testing.T) {
		inputs := []string{
			"",
			"00:aa:bb:cc:dd",          // five groups
			"00:aa:bb:cc:dd:ee:ff",    // seven groups
			"00-aa-bb-cc-dd-ee",       // wrong separator
			"0:aa:bb:cc:dd:ee",        // short group
			"00:aa:bb:cc:dd:zz",       // non-hex
			"00:aa:bb:cc:dd:ee:",      // trailing separator
			"0000:aabb:ccdd:ee:00:11", // wide groups
		}
		for _, input := range inputs {
			_, err := ParseHardwareAddr("tap_adapter.arp_proxy_fake_ethernet_address", input)
			var hwErr *HardwareAddrError
			require.ErrorAs(t, err, &hwErr, "input %q", input)
			assert.Equal(t, input, hwErr.Value)
		}
	})
}

func TestParseValidationMethod(t *testing.T) {
	mode, err := ParseValidationMethod("security.certificate_validation_method", "default")
	require.NoError(t, err)
	assert.Equal(t, ValidateDefault, mode)

	mode, err = ParseValidationMethod("security.certificate_validation_method", "none")
	require.NoError(t, err)
	assert.Equal(t, ValidateNone, mode)

	_, err = ParseValidationMethod("security.certificate_validation_method", "script")
	var enumErr *EnumValueError
	require.ErrorAs(t, err, &enumErr)
}

func TestParseRoutingMethod(t *testing.T) {
	method, err := ParseRoutingMethod("switch.routing_method", "switch")
	require.NoError(t, err)
	assert.Equal(t, RoutingSwitch, method)

	method, err = ParseRoutingMethod("switch.routing_method", "hub")
	require.NoError(t, err)
	assert.Equal(t, RoutingHub, method)

	_, err = ParseRoutingMethod("switch.routing_method", "bridge")
	var enumErr *EnumValueError
	require.ErrorAs(t, err, &enumErr)
	assert.Equal(t, "bridge", enumErr.Value)
}

func TestConversionDeterminism(t *testing.T) {
	// Converting the same token twice yields the same typed value.
	first, err := ParseEndpoint("fscp.contact", "peer.example.net:12000")
	require.NoError(t, err)
	second, err := ParseEndpoint("fscp.contact", "peer.example.net:12000")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	p1, err := ParseAddressPrefix("tap_adapter.ipv6_address_prefix_length", "fe80::1/10")
	require.NoError(t, err)
	p2, err := ParseAddressPrefix("tap_adapter.ipv6_address_prefix_length", "fe80::1/10")
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
}

func TestErrorUnwrapping(t *testing.T) {
	_, err := ParseEndpoint("fscp.listen_on", "nohost")
	var epErr *EndpointError
	require.ErrorAs(t, err, &epErr)
	assert.Error(t, errors.Unwrap(epErr))
}
