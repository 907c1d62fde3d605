// Command regctl inspects and edits registry keys and values by path.
package main

func main() {
	execute()
}
