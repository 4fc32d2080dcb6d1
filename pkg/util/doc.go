// Package util provides small helpers shared across packages, such as
// capping request/response bodies before they're written to a debug log.
package util
