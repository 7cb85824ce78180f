// Package logging wires log/slog with the console and JSON handlers used
// across addaudio. The console handler renders one line per record as
// "TIMESTAMP LEVEL component: message key=value ...".
package logging
