package main

import (
	. "github.com/saylorsolutions/modmake"
)

const (
	teagenVersion = "0.1.0"
)

func main() {
	b := NewBuild()
	b.Generate().DependsOnRunner("tidy", "", Go().ModTidy())

	teagen := NewAppBuild("teagen", "cmd/teagen", teagenVersion)
	teagen.Build(func(gb *GoBuild) {
		gb.
			StripDebugSymbols().
			SetVariable("main", "version", teagenVersion)
	})
	teagen.Variant("windows", "amd64")
	teagen.Variant("linux", "amd64")
	teagen.Variant("linux", "arm64")
	teagen.Variant("darwin", "amd64")
	teagen.Variant("darwin", "arm64")
	b.ImportApp(teagen)

	b.Execute()
}
