// Package config defines how parcelup reaches the control plane and how long
// it waits on each parcel stage.
//
// Values come from, in increasing precedence: built-in defaults, a YAML file
// ([LoadFile]), PARCELUP_* environment variables ([ApplyEnv]) and command-line
// flags. Request and polling timings are tuned separately through
// [LoadTimeouts].
package config
