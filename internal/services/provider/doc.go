// Package provider backs the provider dashboard: profile, services,
// bookings, metrics, weekly availability and insights.
package provider
