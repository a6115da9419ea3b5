// Package pages holds the two static error pages and maps render outcomes
// to HTTP responses.
//
// The error pages are read once at startup by [Load] and never change. They
// are the universal fallback: every failure a visitor can trigger ends in one
// of them, so [Load] refuses to return a value with an empty page.
package pages
