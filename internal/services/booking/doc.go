// Package booking creates and tracks bookings for the signed-in user.
package booking
