package main

import (
	"fmt"
	"os"

	"github.com/crucial707/student-records/cmd/cli/auth"
	"github.com/crucial707/student-records/cmd/cli/root"
	"github.com/crucial707/student-records/cmd/cli/students"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	students.InitStudents(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
