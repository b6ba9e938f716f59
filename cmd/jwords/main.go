// Jwords validates and inspects the .words sidecar files that accompany a
// directory document's page images.
//
// Usage:
//
//	jwords [-v] docdir|file.words ...
//
// Given a directory it checks every page-NNN.words file in it; given
// individual files it checks just those. For each file it reports parse
// errors and, with -v, prints the parsed words one per line with their
// ordinal and box. The exit status is nonzero when any file fails.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/justread/justread/doc"
)

const version = "jwords v0.1.0"

var verbose = flag.Bool("v", false, "print version and the parsed words")

func main() {
	flag.Parse()
	if *verbose {
		fmt.Println(version)
	}
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: jwords [-v] docdir|file.words ...")
		os.Exit(2)
	}

	failed := false
	for _, arg := range flag.Args() {
		files, err := expand(arg)
		if err != nil {
			warn("%s: %v", arg, err)
			failed = true
			continue
		}
		if len(files) == 0 {
			warn("%s: no .words files", arg)
			continue
		}
		for _, f := range files {
			if !check(f) {
				failed = true
			}
		}
	}
	if failed {
		os.Exit(1)
	}
}

// expand turns an argument into the list of sidecar files it names: the
// file itself, or all page-*.words in a directory.
func expand(arg string) ([]string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{arg}, nil
	}
	files, err := filepath.Glob(filepath.Join(arg, "page-*.words"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// check parses one sidecar and reports the result.
func check(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		warn("%s: %v", path, err)
		return false
	}
	words, err := doc.ParseWords(string(data))
	if err != nil {
		warn("%s: %v", path, err)
		return false
	}
	fmt.Printf("%s: %d words\n", path, len(words))
	if *verbose {
		for _, w := range words {
			fmt.Printf("  %3d [%g %g %g %g] %s\n",
				w.Ordinal, w.Box.X0, w.Box.Y0, w.Box.X1, w.Box.Y1, w.Text)
		}
	}
	return true
}

func warn(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "jwords: "+format+"\n", args...)
}
