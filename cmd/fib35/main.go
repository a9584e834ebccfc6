package main

import "github.com/plugfox/foxy-fib/internal/app"

func main() {
	app.Main(35)
}
