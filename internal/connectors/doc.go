// Package connectors holds the adapters that read knowledge files from
// where they live. The filesystem connector is the only one; it lists and
// watches the local knowledge directory for the ingest service.
package connectors
