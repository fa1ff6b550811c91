package main

import (
	"os"

	"gcctracker-backend/cmd/gcc-cli/cmd"
)

func main() {
	baseUrl, ok := os.LookupEnv("GCC_BASE_URL")
	if ok {
		cmd.BaseUrl = baseUrl
	}

	cmd.Execute()
}
