// Package payment charges and refunds bookings.
//
// Amounts are decimals; processing and refunds are checked client-side for a
// positive amount before anything is sent.
package payment
