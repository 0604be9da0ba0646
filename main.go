// Package main はアプリケーションのエントリーポイントを提供します。
package main

import "github.com/stsysd/kusa/cmd"

func main() {
	cmd.Execute()
}
