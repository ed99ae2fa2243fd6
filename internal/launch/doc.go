// Package launch locates the rigctld executable and builds its command line.
//
// This package provides four capabilities:
//
// # Discovery
//
// The Discoverer interface locates the rigctld binary:
//
//	discoverer := launch.NewDiscoverer(&launch.Config{
//	    Program: "",           // Optional explicit name or path
//	    Logger:  slog.Default(),
//	})
//	path, err := discoverer.Discover(ctx)
//
// Discovery searches in the following order:
//  1. Config.Program when it contains a path separator
//  2. System PATH
//  3. Common installation directories (/usr/local/bin, /usr/bin, /opt/homebrew/bin)
//
// Exists is the cheap variant: a PATH lookup that never runs the program.
//
// # Version Probe
//
// Version runs `rigctld --version` and returns its trimmed output. During
// discovery the parsed version is compared with MinimumVersion and a warning
// is logged when it is older.
//
// # Command Building
//
//	args := launch.BuildArgs(cfg) // -T host -t port -m model [-r file] [-s speed] [-c civ]
//
// # Model Listing
//
// ListModels runs `rigctld -l` and parses the supported rig models.
package launch
