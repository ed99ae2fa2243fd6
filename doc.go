// Package rigctld provides a Go SDK for Hamlib's rigctld network daemon.
//
// The SDK has two halves: a typed client for rigctld's extended response
// protocol, and a supervisor that finds, launches, probes and stops the
// daemon process.
//
// # Talking to a running daemon
//
// Dial connects to a daemon that is already listening:
//
//	ctx := context.Background()
//	rig, err := rigctld.Dial(ctx, "127.0.0.1", 4532)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rig.Close()
//
//	hz, err := rig.GetFrequency(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(rigctld.FormatFrequency(hz))
//
// Requests are answered in order on a single connection. Calls from several
// goroutines are serialized.
//
// # Running the daemon
//
// Spawn starts rigctld and returns once its port accepts connections.
// WithDaemon does the same and stops the process when the callback returns:
//
//	cfg := rigctld.NewDaemonConfig().
//	    WithModel(3061).
//	    WithRigFile("/dev/ttyUSB0").
//	    WithSerialSpeed(19200).
//	    WithCIVAddress(0x76)
//
//	err := rigctld.WithDaemon(ctx, cfg, func(d *rigctld.DaemonHandle) error {
//	    return rigctld.WithRig(ctx, cfg.Host, cfg.Port, func(rig rigctld.Rig) error {
//	        return rig.SetFrequency(ctx, 7074000)
//	    })
//	})
//
// The daemon configuration is not validated before launch. A wrong model or
// device usually shows up as a timeout on the first command, not as a spawn
// failure.
//
// The listen port is owned by the caller. Spawning twice on the same port
// does not fail up front; the second process exits once it cannot bind and
// its handle reports Crashed. LockPort serializes lifecycles per port for
// callers that need it.
//
// # Logging
//
// The SDK is silent by default. Pass WithLogger to see lifecycle events and,
// at debug level, every exchange on the wire:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	rig, err := rigctld.Dial(ctx, host, port, rigctld.WithLogger(logger))
//
// # Error Handling
//
// Every failure is one of a few typed errors:
//
//	if err := rig.SetMode(ctx, rigctld.ModeUSB, 2400); err != nil {
//	    if rigErr, ok := errors.AsType[*rigctld.RigError](err); ok {
//	        log.Fatalf("rig refused: %s", rigErr.Name())
//	    }
//	    if connErr, ok := errors.AsType[*rigctld.ConnectionError](err); ok {
//	        log.Fatalf("connection %s: %v", connErr.Kind, connErr)
//	    }
//	    log.Fatal(err)
//	}
//
// After a ConnectionError the connection is closed for good. Dial again.
package rigctld
