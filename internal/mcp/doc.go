// Package mcp exposes rig control as Model Context Protocol tools.
//
// Server keeps its own tool registry for direct invocation and mirrors every
// tool onto an official MCP SDK server, which Run serves over any MCP
// transport (stdio for the rigctl CLI).
package mcp
