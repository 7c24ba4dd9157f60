// Package catalog defines the movie catalog domain: the Movie and Category
// records, the repository contracts every storage driver implements, and the
// form validation applied before anything is written.
package catalog
