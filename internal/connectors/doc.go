// Package connectors provides implementations of the EntrySource
// interface. Each connector knows how to read journal entries from a
// specific storage layer; the filesystem journal connector is the only
// one shipped today.
package connectors
