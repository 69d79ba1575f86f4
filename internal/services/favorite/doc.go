// Package favorite keeps the user's saved services.
package favorite
