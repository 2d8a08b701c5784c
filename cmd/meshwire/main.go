// Meshwire is a peer-to-peer secure networking daemon.
//
// Usage:
//
//	# Start with a discovered or default configuration
//	meshwire
//
//	# Start with an explicit configuration file
//	meshwire --configuration_file /etc/meshwire/meshwire.toml
//
//	# Override any option from the command line
//	meshwire --fscp.listen_on 0.0.0.0:12000 --tap_adapter.enabled=false
//
//	# Show version information
//	meshwire version
//
// Every configuration option is addressable on the command line by its
// dotted name; run `meshwire --help` for the full list.
package main

func main() {
	Execute()
}
