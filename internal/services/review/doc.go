// Package review lists and writes reviews of services.
package review
