// Package console implements the interactive QR tool menu.
//
// The Controller reads choices and parameters line by line from an
// io.Reader and writes prompts and results to an io.Writer, so it runs
// the same against a terminal or a test buffer. Generation and scanning
// are dispatched as commands through core/command: each operation gets
// its own operation id in the logs, and a panic inside a collaborator is
// reported on the console instead of ending the loop.
//
// The loop is a small state machine:
//
//	MenuWait --1--> Generating --> MenuWait
//	MenuWait --2--> Scanning   --> MenuWait
//	MenuWait --3--> Exited
//	MenuWait --other--> MenuWait
//
// End of input and a cancelled context also lead to Exited.
package console
