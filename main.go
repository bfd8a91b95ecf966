// The main package for the scraper executable.
package main

import "github.com/Musxeto/crawl4ai-demo/cmd"

func main() {
	cmd.Execute()
}
