// Package utils provides common utility functions for the sheet-graph service.
// It includes helper functions for converting loosely typed values (webhook
// payloads, query parameters) into the strings and numbers the core expects.
package utils
