// Command pagectl inspects the allocator's page geometry.
package main

func main() {
	execute()
}
