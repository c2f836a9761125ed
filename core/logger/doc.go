// Package logger is a structured event log for the shell.
//
// Each entry is one JSON object per line holding a timestamp, the session the
// event came from and exactly one event.
package logger
