// Package discovery finds inventory backends on the local network.
//
// Backends that advertise themselves over mDNS/DNS-SD as
// "_inventory-http._tcp" services are collected during a timed browse and
// reported with their address, port, and TXT metadata. Discovery is a
// convenience for filling in the base URL; the client works equally well
// with a manually configured address.
package discovery
