package cli

import "pta/internal/config"

// Flags holds command-line flags
type Flags struct {
	RootDir     string
	OutputPath  string
	ConfigFile  string
	Verbose     bool
	NameFilter  string
	TestCases   bool
	KeepGoing   bool
	NoProgress  bool
	SummaryOnly bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		RootDir:     f.RootDir,
		OutputPath:  f.OutputPath,
		ConfigFile:  f.ConfigFile,
		Verbose:     f.Verbose,
		NameFilter:  f.NameFilter,
		TestCases:   f.TestCases,
		KeepGoing:   f.KeepGoing,
		NoProgress:  f.NoProgress,
		SummaryOnly: f.SummaryOnly,
	}
}
