// Package catalog searches and manages bookable services.
package catalog
