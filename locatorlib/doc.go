// This package provides a lookup engine which maps IP addresses to a
// geographic location using a prebuilt range table.
//
// locatorlib is core of the iplocator serving side. Table is built
// offline by the builder package, loaded once at start and never
// mutated afterwards, so Locator can be used from any number of
// goroutines without locks.
//
// Locator accepts an address text and returns Location: country,
// province and city, any of which can be empty if the address is
// unmapped. Malformed addresses are reported as AddressParseError.
//
// The rest of the package is an HTTP surface over Locator: single and
// batch lookups, usage statistics, metrics and static files.
package locatorlib
