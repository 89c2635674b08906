// Package rpc implements the network surface of the server: the plain-TCP
// text protocol (requests terminated by '|', replies framed as
// "[status][payload][code]\n"), the fixed-size worker pool that serves
// one-shot connections, and the key=value configuration loader.
package rpc
