package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cli := &commandLine{out: os.Stdout}
	defer cli.close()

	if err := newRootCmd(cli).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		cli.close()
		os.Exit(1)
	}
}
