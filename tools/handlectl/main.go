// Command handlectl exercise a handle table from the console: allocate,
// copy in and read back, exhaust the table, and trip the copy bounds.
package main

func main() {
	execute()
}
