// Package config resolves the run configuration from command-line arguments.
//
// The mode decides how many workers are launched:
//
//	-physical      one worker per physical core
//	-logical       one worker per logical core
//	-threads:<N>   exactly N workers, N > 0
//
// All arguments are scanned and the last mode wins. The optional
// -format:<text|yaml|json> and -verbose switches control the output.
// Unrecognised arguments are ignored.
package config
