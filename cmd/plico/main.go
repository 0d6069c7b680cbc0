// Command plico is a small front end over the plico constraint solver. It
// exists to demonstrate the engine on classic problems; the engine itself is
// the library under pkg/plico.
package main

func main() {
	Execute()
}
