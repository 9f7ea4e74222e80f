package main

import (
	"os"

	"golang.org/x/term"
)

func isTerminal(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func supportsUnicode(writer any) bool {
	return isTerminal(writer)
}

func supportsColor(writer any) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isTerminal(writer)
}
