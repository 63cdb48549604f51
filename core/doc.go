// Package core holds the domain types, contracts, and the Service
// orchestrating the contribution fetch-and-cache flow and the credential
// pass-through operations. Collaborators (cache store, token store,
// contribution source, transport) are injected through functional options so
// tests can substitute fakes for the filesystem, the OS credential store,
// and the network.
package core
