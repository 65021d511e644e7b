// Package builder regenerates a table artifact out of source databases.
package builder

import (
	"time"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/iplocator/iplocator/ranges"
	"github.com/iplocator/iplocator/sources"
	"github.com/iplocator/iplocator/table"
)

// Options defines a single regeneration run.
type Options struct {
	// Fs is a filesystem with sources and artifact. Defaults to the OS
	// filesystem.
	Fs afero.Fs

	IPv4Files []string
	IPv6Files []string

	// Limit caps the number of records taken from each source file.
	// Zero means unbounded.
	Limit int

	// Output is a path of the table artifact.
	Output string
}

func (o *Options) files(family ranges.Family) []string {
	if family == ranges.FamilyIPv4 {
		return o.IPv4Files
	}

	return o.IPv6Files
}

// Build reads sources of both families and encodes them into a table.
// Any source error aborts the whole build.
func Build(opts Options) (*table.Table, error) {
	if opts.Limit < 0 {
		return nil, errors.NotValidf("limit %d", opts.Limit)
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	encoder := table.NewEncoder()

	for _, family := range ranges.Families {
		records, err := sources.Read(fs, family, opts.files(family), opts.Limit)
		if err != nil {
			return nil, errors.Trace(err)
		}

		rngs, err := ranges.Ingest(family, records)
		if err != nil {
			return nil, errors.Annotatef(err, "cannot ingest %s ranges", family)
		}

		if err := ranges.Validate(family, rngs); err != nil {
			return nil, errors.Annotatef(err, "incorrect %s ranges", family)
		}

		encoder.Encode(family, rngs)
	}

	rv := encoder.Table()

	if err := rv.Validate(); err != nil {
		return nil, errors.Annotate(err, "encoded table is incorrect")
	}

	return rv, nil
}

// Regenerate builds a table and saves it as an artifact into
// opts.Output. An existing artifact is replaced only on success.
func Regenerate(opts Options) (*table.Table, error) {
	started := time.Now()

	if opts.Output == "" {
		return nil, errors.NotValidf("empty output path")
	}

	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	rv, err := Build(opts)
	if err != nil {
		return nil, err
	}

	if err := table.Save(opts.Fs, opts.Output, rv); err != nil {
		return nil, errors.Annotate(err, "cannot save table")
	}

	log.WithFields(log.Fields{
		"output":  opts.Output,
		"ipv4":    rv.Len(ranges.FamilyIPv4),
		"ipv6":    rv.Len(ranges.FamilyIPv6),
		"elapsed": time.Since(started),
	}).Info("Table is regenerated")

	return rv, nil
}
