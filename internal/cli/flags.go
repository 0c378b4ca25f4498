package cli

import "elmtl/internal/config"

// Flags holds command-line flags
type Flags struct {
	Processors   int
	TestPath     string
	NameFilter   string
	TestCases    bool
	FailFast     bool
	OnlyFailed   bool
	OpenFailures bool
	ListFailures bool
	Verbose      bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors:   f.Processors,
		TestPath:     f.TestPath,
		NameFilter:   f.NameFilter,
		TestCases:    f.TestCases,
		FailFast:     f.FailFast,
		OnlyFailed:   f.OnlyFailed,
		OpenFailures: f.OpenFailures,
		ListFailures: f.ListFailures,
		Verbose:      f.Verbose,
	}
}
