// iplocator is a service which maps IPv4 and IPv6 addresses to a
// country, province and city.
//
// It works in two stages. First, build command reads source databases
// (CSV dumps or MMDB files), turns them into sorted gap-free ranges and
// encodes them into a compact table artifact. Then serve command loads
// this artifact and answers lookups over HTTP with a binary search.
//
// Packages
//
// csvdb reads raw CSV records and opens compressed source files.
//
// sources turns source files of any supported format into records.
//
// ranges parses addresses and ingests records into ranges which cover
// the whole address space of a family.
//
// table builds dictionaries, encodes, searches, saves and loads the
// table artifact.
//
// builder wires everything above into a single regeneration run.
//
// locatorlib is a lookup engine and its HTTP API.
//
// A main package is a CLI with serve, build and dump commands.
package main
