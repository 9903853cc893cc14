// Package pipeline orchestrates the fill-and-convert run: extract the
// template package into a working directory, render its XML members with
// caller data, repack the archive, hand it to a conversion backend, and
// remove the temporary state on success.
package pipeline
