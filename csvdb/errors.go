package csvdb

import "fmt"

// SourceParseError is returned when a row of a source database has a
// missing column or an address which cannot be parsed. It is fatal for
// the whole build.
type SourceParseError struct {
	Source string
	Line   int
	Err    error
}

func (s *SourceParseError) Error() string {
	if s.Line > 0 {
		return fmt.Sprintf("cannot parse %s:%d: %v", s.Source, s.Line, s.Err)
	}

	return fmt.Sprintf("cannot parse %s: %v", s.Source, s.Err)
}

func (s *SourceParseError) Unwrap() error {
	return s.Err
}

// SourceIOError is returned when a source archive or file cannot be
// accessed or decompressed.
type SourceIOError struct {
	Path string
	Err  error
}

func (s *SourceIOError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", s.Path, s.Err)
}

func (s *SourceIOError) Unwrap() error {
	return s.Err
}
