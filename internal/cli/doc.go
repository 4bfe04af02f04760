// Package cli parses skiroute command-line arguments into an app.Config.
//
// Settings are layered: built-in defaults, then the optional HCL file named
// by -config, then any flag given explicitly on the command line.
package cli
