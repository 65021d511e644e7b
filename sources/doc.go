// Package sources reads raw range records out of source databases.
//
// Two formats are supported: CSV dumps (plain, gzipped or the first
// entry of a zip archive) with columns begin, end, country, province,
// unused and city; and MaxMind city databases in MMDB format. Format is
// chosen by file extension.
package sources
