// Package components holds the small shared pieces of markup used by every
// page: alerts, navigation and the CSRF form field.
package components
