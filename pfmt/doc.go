/*
© 2022–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package pfmt provides an [fmt.Printf] %v function that does not use the [fmt.Stringer.String] method.
package pfmt
