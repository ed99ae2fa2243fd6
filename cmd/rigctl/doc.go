// Command rigctl drives a rigctld daemon from the shell.
//
//	rigctl freq set "7.074 MHz"
//	rigctl mode set USB 2400
//	rigctl status
//	rigctl daemon run --profile ic7200.toml
//	rigctl sim --port 4532
//	rigctl mcp
package main
