// Package keyring manages named key pairs and runs the asymmetric protocol
// with them.
//
// Secret keys are loaded for a single operation and released before the
// method returns. Only public data leaves the service.
package keyring
