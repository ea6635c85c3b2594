// Package image generates cartoon illustrations for words with generative
// image services and exports the resulting references to disk.
//
// Generated images are passed around as opaque references. Providers that
// return raw bytes encode them as data URLs so a reference can be rendered
// or saved without another network round trip.
package image
